package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yuchen/rootdrill/internal/selfupdate"
)

var (
	updateCheckOnly bool
	updateTag       string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update rootdrill to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if updateCheckOnly {
			result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: resolvedVersion()})
			if err != nil {
				return fmt.Errorf("check for updates: %w", err)
			}
			if !result.UpdateAvailable {
				fmt.Println("Already running the latest version.")
				return nil
			}
			fmt.Printf("Update available: %s (running %s). Run rootdrill update to install.\n",
				result.LatestVersion, result.CurrentVersion)
			return nil
		}

		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: resolvedVersion(),
			TargetVersion:  updateTag,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Println(p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Println("Already running the latest version.")
			return nil
		case os.IsPermission(err):
			return fmt.Errorf("%w\n\nTry running: sudo rootdrill update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "only check whether a newer release exists")
	updateCmd.Flags().StringVar(&updateTag, "tag", "", "install a specific release tag instead of the latest")
}
