package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillq/internal/catalog"
	"github.com/abhisek/skillq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "skillq",
	Short: "Training queue planner",
	Long:  "skillq — terminal companion that plans skill training queues, resolving every prerequisite automatically.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLQ_DB env var)")
	rootCmd.PersistentFlags().String("character", "", "Character whose trained levels apply")

	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(charCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SKILLQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the store at the resolved database path.
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

// loadCatalog builds the in-memory catalog from the store.
func loadCatalog(ctx context.Context, st *store.Store) (*catalog.Catalog, error) {
	skills, err := st.Skills().LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(skills) == 0 {
		return nil, fmt.Errorf("catalog is empty; run: skillq catalog import <file>")
	}
	return catalog.New(skills), nil
}
