package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillq/internal/selfupdate"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update skillq to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))
		err := checker.Update(ctx, version, func(msg string) {
			fmt.Println(msg)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("This is a development build; install a release build to use self-update.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Println("skillq is up to date.")
			return nil
		case os.IsPermission(err):
			return fmt.Errorf("%w\n\nthe binary is not writable; try: sudo skillq update", err)
		}
		return err
	},
}
