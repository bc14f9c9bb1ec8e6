package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yuchen/rootdrill/internal/backup"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export progress, quiz statistics, and settings to a backup file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snap := backup.Export(st.LoadProgress(ctx), st.LoadQuiz(ctx), st.LoadSettings(ctx))
		data, err := snap.Marshal()
		if err != nil {
			return fmt.Errorf("marshal backup: %w", err)
		}

		out := exportOutput
		if out == "" {
			out = fmt.Sprintf("rootdrill-backup-%s.json", time.Now().Format("20060102-150405"))
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}

		fmt.Println("Backup written to", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Backup file path (default: timestamped name)")
}
