package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillq/internal/catalog"
	"github.com/abhisek/skillq/internal/skillqueue"
)

var charCmd = &cobra.Command{
	Use:   "char",
	Short: "Manage character skill sheets",
}

var charSetCmd = &cobra.Command{
	Use:   "set <character> <skill-id> <level>",
	Short: "Record a character's trained level for a skill (0 clears it)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid skill ID %q", args[1])
		}
		level, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid level %q", args[2])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Characters().SetLevel(cmd.Context(), args[0], skillqueue.SkillID(id), level); err != nil {
			return err
		}
		fmt.Printf("%s: skill %d -> level %d\n", args[0], id, level)
		return nil
	},
}

var charShowCmd = &cobra.Command{
	Use:   "show <character>",
	Short: "Show a character's trained skills",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		levels, err := st.Characters().TrainedLevels(ctx, args[0])
		if err != nil {
			return err
		}
		if len(levels) == 0 {
			fmt.Printf("%s has no trained skills\n", args[0])
			return nil
		}

		cat, err := loadCatalog(ctx, st)
		if err != nil {
			return err
		}

		ids := make([]skillqueue.SkillID, 0, len(levels))
		for id := range levels {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return cat.Name(ids[i]) < cat.Name(ids[j]) })

		for _, id := range ids {
			fmt.Printf("%-40s %s\n", cat.Name(id), catalog.RomanLevel(levels[id]))
		}
		fmt.Printf("\n%d skills trained\n", len(levels))
		return nil
	},
}

var charListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known characters",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		names, err := st.Characters().List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	charCmd.AddCommand(charSetCmd)
	charCmd.AddCommand(charShowCmd)
	charCmd.AddCommand(charListCmd)
}
