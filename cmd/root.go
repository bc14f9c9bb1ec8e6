package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuchen/rootdrill/internal/app"
	"github.com/yuchen/rootdrill/internal/dataset"
	"github.com/yuchen/rootdrill/internal/screens/browse"
	"github.com/yuchen/rootdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "rootdrill",
	Short: "Word root and affix trainer",
	Long:  "Rootdrill is a terminal flashcard and quiz trainer over an extracted word-root dataset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ROOTDRILL_DB env var)")
	rootCmd.PersistentFlags().String("data", "", "Path to dataset JSON file (overrides ROOTDRILL_DATA env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp loads the dataset, opens the store, and launches the TUI on
// the browse screen.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	state := app.NewState(ctx, ds, st)
	return app.Run(state, browse.New(state))
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then ROOTDRILL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveDataPath returns the dataset path using --data flag, then
// ROOTDRILL_DATA env var, then the default XDG path.
func resolveDataPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, nil
	}
	return dataset.DefaultDataPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func loadDataset(cmd *cobra.Command) (*dataset.Dataset, error) {
	dataPath, err := resolveDataPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset path: %w", err)
	}
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}
