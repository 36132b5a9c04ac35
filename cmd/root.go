package cmd

import (
	logger "github.com/stewinjo/rosecrypt/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "rosecrypt",
		Short: "Rosecrypt - Hide payloads inside procedurally generated noise images.",
		Long: `Rosecrypt renders organic-looking noise images and hides payloads in them.

The carrier image is generated from your passphrase, so the expected pixel
values can be recomputed at decode time and nothing but the image itself
needs to be shared.

Usage:
  rosecrypt <command> [flags]

Available Commands:
  encode     Render a noise image with a payload hidden inside it
  decode     Recover a payload from a carrier image
  capacity   Show how much payload a carrier can hold
  history    View the operation history log
  version    Show the rosecrypt version

Run 'rosecrypt help <command>' for more details on a specific command.
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing rosecrypt with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(encodeCmd)
	RootCmd.AddCommand(decodeCmd)
	RootCmd.AddCommand(capacityCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(versionCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEncodeCommandState()
	resetDecodeCommandState()
	resetCapacityCommandState()
	resetHistoryCommandState()
	resetCobraFlagState()
}

// resetCobraFlagState clears the sticky Changed state cobra keeps between
// Execute calls in the same process.
func resetCobraFlagState() {
	for _, cmd := range []*cobra.Command{RootCmd, encodeCmd, decodeCmd, capacityCmd, historyCmd} {
		if cmd == nil || cmd.Flags() == nil {
			continue
		}
		cmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
	if RootCmd != nil && RootCmd.PersistentFlags() != nil {
		RootCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
