package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is stamped by the release build via -ldflags.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the skillq version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skillq %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
	},
}
