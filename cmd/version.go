package cmd

import (
	"fmt"
	"runtime"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the rosecrypt version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		banner := figure.NewColorFigure("Rosecrypt", "alligator2", "red", true)
		banner.Print()
		fmt.Println()
		fmt.Printf("rosecrypt %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
	},
}
