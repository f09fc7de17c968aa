package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillq/internal/catalog"
	"github.com/abhisek/skillq/internal/skillqueue"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill catalog",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills (optionally filtered by group)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := loadCatalog(cmd.Context(), st)
		if err != nil {
			return err
		}

		group, _ := cmd.Flags().GetString("group")
		var skills []catalog.Skill
		if group != "" {
			skills = cat.ByGroup(group)
			if len(skills) == 0 {
				return fmt.Errorf("no skills found for group %q", group)
			}
		} else {
			skills = cat.All()
		}

		fmt.Printf("%-8s  %-40s  %4s  %s\n", "ID", "Name", "Rank", "Group")
		fmt.Println(strings.Repeat("─", 80))
		for _, s := range skills {
			fmt.Printf("%-8d  %-40s  %4d  %s\n", s.ID, catalog.TruncateName(s.Name, 40), s.Rank, s.Group)
		}
		fmt.Printf("\n%d skills\n", len(skills))
		return nil
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <skill-id>",
	Short: "Show a skill with its full prerequisite tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid skill ID %q", args[0])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := loadCatalog(cmd.Context(), st)
		if err != nil {
			return err
		}

		s, err := cat.Skill(skillqueue.SkillID(id))
		if err != nil {
			return err
		}

		resolver := skillqueue.New(cat, nil)
		depth, err := resolver.Depth(s.ID)
		if err != nil {
			return err
		}

		fmt.Printf("%s (ID %d)\n", s.Name, s.ID)
		fmt.Printf("Group: %s   Rank: %d   Depth: %d\n", s.Group, s.Rank, depth)
		if len(s.Prerequisites) == 0 {
			fmt.Println("No prerequisites.")
			return nil
		}
		fmt.Println("Prerequisites:")
		printPrereqTree(cat, s, 1)
		return nil
	},
}

// printPrereqTree prints the prerequisite tree of a skill, indented by depth.
func printPrereqTree(cat *catalog.Catalog, s catalog.Skill, indent int) {
	for _, req := range s.Prerequisites {
		fmt.Printf("%s%s %s\n", strings.Repeat("  ", indent), cat.Name(req.Skill), catalog.RomanLevel(req.Level))
		if child, err := cat.Skill(req.Skill); err == nil {
			printPrereqTree(cat, child, indent+1)
		}
	}
}

func init() {
	skillListCmd.Flags().String("group", "", "Filter by group (e.g. Gunnery)")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
}
