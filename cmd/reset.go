package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuchen/rootdrill/internal/progress"
	"github.com/yuchen/rootdrill/internal/quiz"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all learning progress and quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			fmt.Println("This deletes all progress, quiz statistics, and review history.")
			fmt.Println("Run again with --force to confirm.")
			return nil
		}

		ctx := cmd.Context()
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := progress.NewService(ctx, st).Reset(ctx); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		if err := quiz.NewService(ctx, st).Reset(ctx); err != nil {
			return fmt.Errorf("reset quiz stats: %w", err)
		}

		fmt.Println("All learner data reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip the confirmation prompt")
}
