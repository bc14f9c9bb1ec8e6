package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuchen/rootdrill/internal/progress"
	"github.com/yuchen/rootdrill/internal/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		prog := progress.NewService(ctx, st)
		quizSvc := quiz.NewService(ctx, st)

		counts := prog.StatusCounts()
		totals := prog.FlashTotals()
		quizTotal, quizCorrect := quizSvc.Totals()

		fmt.Printf("Mastered:   %d\n", counts[progress.StatusMastered])
		fmt.Printf("Learning:   %d\n", counts[progress.StatusLearning])
		fmt.Printf("New:        %d\n", counts[progress.StatusNew])
		fmt.Printf("Flashcards: %d shown, %d remembered, %d again\n",
			totals.Shown, totals.Remembered, totals.Again)
		if quizTotal > 0 {
			fmt.Printf("Quiz:       %d/%d correct (%.0f%%)\n",
				quizCorrect, quizTotal, 100*float64(quizCorrect)/float64(quizTotal))
		} else {
			fmt.Println("Quiz:       no questions answered yet")
		}
		return nil
	},
}
