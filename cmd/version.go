package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			figure.NewFigure("sorubot", "small", true).Print()
		}
		fmt.Println("sorubot", version)
	},
}

func init() {
	versionCmd.Flags().Bool("banner", false, "Print an ASCII banner")
}
