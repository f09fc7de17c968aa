package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillq/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local skill catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a skill catalog export (JSON), replacing the stored one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Skills().Replace(cmd.Context(), cat.All()); err != nil {
			return fmt.Errorf("store catalog: %w", err)
		}

		fmt.Printf("imported %d skills\n", cat.Len())
		return nil
	},
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored catalog size",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.Skills().Count(cmd.Context())
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("no catalog imported")
			return nil
		}
		fmt.Printf("%d skills stored\n", n)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
}
