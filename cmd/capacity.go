package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stewinjo/rosecrypt/internal/ui"
	"github.com/stewinjo/rosecrypt/internal/workflows"
)

var (
	capacityWidth  int
	capacityHeight int
	capacityIn     string
)

func init() {
	capacityCmd.Flags().IntVar(&capacityWidth, "width", 0, "carrier width in pixels")
	capacityCmd.Flags().IntVar(&capacityHeight, "height", 0, "carrier height in pixels")
	capacityCmd.Flags().StringVarP(&capacityIn, "in", "i", "", "read dimensions from an existing carrier image")

	capacityCmd.MarkFlagsRequiredTogether("width", "height")
	capacityCmd.MarkFlagsMutuallyExclusive("width", "in")
}

// resetCapacityCommandState resets the capacity command's global state for testing.
func resetCapacityCommandState() {
	capacityWidth = 0
	capacityHeight = 0
	capacityIn = ""
}

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Show how much payload a carrier can hold",
	Long: `Reports the embeddable capacity for a carrier size: total bits, fixed
framing overhead, and the largest payload that fits.

Examples:
  rosecrypt capacity --width 256 --height 256
  rosecrypt capacity -i art.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting capacity command")

		spinner, cleanup := startSpinner("Computing capacity...", verbose)
		defer cleanup()

		result, err := workflows.Capacity(context.Background(), workflows.CapacityOptions{
			Width:     capacityWidth,
			Height:    capacityHeight,
			InputPath: capacityIn,
		})
		if err != nil {
			spinner.FinalMSG = formatPipelineError(err, "compute capacity")
			return err
		}

		finalMessage := ui.Success.Sprint("✓") + " " + fmt.Sprintf("%dx%d carrier: %d embeddable bits", result.Width, result.Height, result.CapacityBits) + "\n" +
			ui.Info.Sprint("→") + " " + fmt.Sprintf("%d bits of framing, max payload %d bytes", result.OverheadBits, result.MaxPayloadBytes)
		if result.MaxPayloadBytes == 0 {
			finalMessage += "\n" + ui.Warning.Sprint("→") + " Too small for any payload; the framing alone needs " +
				fmt.Sprintf("%d bits", result.OverheadBits)
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
