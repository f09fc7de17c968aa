package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/skillq/internal/catalog"
	"github.com/abhisek/skillq/internal/plan"
	"github.com/abhisek/skillq/internal/skillqueue"
	"github.com/abhisek/skillq/internal/store"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build and manage training plans",
}

var planBuildCmd = &cobra.Command{
	Use:   "build <name> <skill-id:level>...",
	Short: "Resolve skill targets into a full training queue and save it",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		requests, err := parseRequests(args[1:])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		cat, err := loadCatalog(ctx, st)
		if err != nil {
			return err
		}

		character, _ := cmd.Flags().GetString("character")
		if character == "" {
			character = "default"
		}
		svc := plan.NewService(cat, st.Characters(), st.Plans())

		p, unknown, buildErr := svc.Build(ctx, args[0], character, requests)
		printUnknown(unknown)
		if p == nil {
			if buildErr != nil {
				return buildErr
			}
			fmt.Println("nothing to train")
			return nil
		}

		printPlan(cat, p)
		if buildErr != nil {
			fmt.Printf("\nsome requests could not be resolved:\n%v\n", buildErr)
		}
		return nil
	},
}

var planFixCmd = &cobra.Command{
	Use:   "fix <plan-id>",
	Short: "Rebuild a saved plan, restoring missing prerequisites and dropping duplicates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid plan ID %q", args[0])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		cat, err := loadCatalog(ctx, st)
		if err != nil {
			return err
		}

		svc := plan.NewService(cat, st.Characters(), st.Plans())
		p, unknown, err := svc.Repair(ctx, id)
		printUnknown(unknown)
		if err != nil {
			return err
		}

		printPlan(cat, p)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		cat, err := loadCatalog(ctx, st)
		if err != nil {
			return err
		}

		svc := plan.NewService(cat, st.Characters(), st.Plans())
		plans, err := svc.List(ctx)
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			fmt.Println("no saved plans")
			return nil
		}
		for _, p := range plans {
			fmt.Printf("%s  %-24s %-16s %s\n", p.ID, p.Name, p.Character, p.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show the steps of a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid plan ID %q", args[0])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		cat, err := loadCatalog(ctx, st)
		if err != nil {
			return err
		}

		svc := plan.NewService(cat, st.Characters(), st.Plans())
		p, err := svc.Get(ctx, id)
		if err != nil {
			if err == store.ErrPlanNotFound {
				return fmt.Errorf("no plan with ID %s", id)
			}
			return err
		}

		printPlan(cat, p)
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Delete a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid plan ID %q", args[0])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		cat, err := loadCatalog(ctx, st)
		if err != nil {
			return err
		}

		svc := plan.NewService(cat, st.Characters(), st.Plans())
		if err := svc.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("deleted plan %s\n", id)
		return nil
	},
}

// parseRequests parses "id:level" arguments into resolution requests.
func parseRequests(args []string) ([]skillqueue.Request, error) {
	requests := make([]skillqueue.Request, 0, len(args))
	for _, arg := range args {
		idStr, levelStr, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("invalid target %q, expected <skill-id>:<level>", arg)
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid skill ID in %q", arg)
		}
		level, err := strconv.Atoi(levelStr)
		if err != nil {
			return nil, fmt.Errorf("invalid level in %q", arg)
		}
		requests = append(requests, skillqueue.Request{Skill: skillqueue.SkillID(id), Level: level})
	}
	return requests, nil
}

func printPlan(cat *catalog.Catalog, p *plan.Plan) {
	fmt.Printf("%s (%s)\n", p.Name, p.Character)
	fmt.Printf("ID: %s\n\n", p.ID)
	for i, step := range p.Steps {
		fmt.Printf("%3d. %-40s %s\n", i+1, cat.Name(step.Skill), catalog.RomanLevel(step.Level))
	}
	fmt.Printf("\n%d steps\n", len(p.Steps))
}

func printUnknown(unknown []skillqueue.SkillID) {
	for _, id := range unknown {
		fmt.Fprintf(os.Stderr, "warning: skill %d is not in the catalog; treated as having no prerequisites\n", id)
	}
}

func init() {
	planCmd.AddCommand(planBuildCmd)
	planCmd.AddCommand(planFixCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planDeleteCmd)
}
