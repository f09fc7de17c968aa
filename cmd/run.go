package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillq/internal/app"
	"github.com/abhisek/skillq/internal/plan"
	"github.com/abhisek/skillq/internal/skillqueue"
)

// runApp opens the store, builds dependencies, and launches the planner TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := loadCatalog(ctx, st)
	if err != nil {
		return err
	}

	character, _ := cmd.Flags().GetString("character")
	if character == "" {
		character = "default"
	}
	baseline, err := st.Characters().TrainedLevels(ctx, character)
	if err != nil {
		return fmt.Errorf("load trained levels: %w", err)
	}

	return app.Run(app.Options{
		Catalog:   cat,
		Resolver:  skillqueue.New(cat, baseline),
		Plans:     plan.NewService(cat, st.Characters(), st.Plans()),
		Character: character,
	})
}
