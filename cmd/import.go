package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yuchen/rootdrill/internal/backup"
)

var importCmd = &cobra.Command{
	Use:   "import <backup-file>",
	Short: "Restore progress, quiz statistics, and settings from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}

		snap, err := backup.Parse(data)
		if err != nil {
			switch {
			case errors.Is(err, backup.ErrNoProgress):
				return fmt.Errorf("%s does not look like a rootdrill backup: %w", args[0], err)
			case errors.Is(err, backup.ErrNotJSON):
				return fmt.Errorf("cannot parse %s: %w", args[0], err)
			}
			return err
		}

		ctx := cmd.Context()
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := backup.Restore(ctx, st, snap); err != nil {
			return err
		}

		fmt.Printf("Imported %d entries of progress.\n", len(snap.Progress.Entries))
		return nil
	},
}
