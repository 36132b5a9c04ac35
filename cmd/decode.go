package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stewinjo/rosecrypt/internal/configs"
	"github.com/stewinjo/rosecrypt/internal/noise"
	"github.com/stewinjo/rosecrypt/internal/ui"
	"github.com/stewinjo/rosecrypt/internal/workflows"
)

var (
	decodeKey   string
	decodeIn    string
	decodeOut   string
	decodeNoise = noise.Perlin
	decodeSalt  string
)

func init() {
	decodeCmd.Flags().StringVarP(&decodeKey, "key", "k", "", "passphrase (falls back to $ROSECRYPT_KEY, then a prompt)")
	decodeCmd.Flags().StringVarP(&decodeIn, "in", "i", "", "carrier image to read")
	decodeCmd.Flags().StringVarP(&decodeOut, "out", "o", "", "payload output file ('-' or omitted writes stdout)")
	decodeCmd.Flags().VarP(&decodeNoise, "noise", "n", "noise baseline used at encode time: perlin or simplex")
	decodeCmd.Flags().StringVar(&decodeSalt, "salt", "", "hex-encoded key derivation salt")

	_ = decodeCmd.MarkFlagRequired("in")
}

// resetDecodeCommandState resets the decode command's global state for testing.
func resetDecodeCommandState() {
	decodeKey = ""
	decodeIn = ""
	decodeOut = ""
	decodeNoise = noise.Perlin
	decodeSalt = ""
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Recover a payload from a carrier image",
	Long: `Recomputes the carrier's noise baseline from your passphrase and reads the
payload back out of the deviations.

A salt sidecar written by 'encode --random-salt' is picked up automatically
when it sits next to the carrier. The payload goes to stdout unless --out
names a file.

Examples:
  rosecrypt decode -i art.png                    # payload to stdout
  rosecrypt decode -i art.png -o secret.txt
  rosecrypt decode -i art.png --salt 5e11a0fc623b7d948812cf03a4b95d27`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decode command")

		settings, err := configs.EnsureSettings()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load settings: %v", err)
		}
		env, err := configs.LoadEnv()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read environment overrides: %v", err)
		}

		kind, err := noiseKindOrDefault(cmd, decodeNoise, env, settings)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve noise kind: %v", err)
		}
		Logger.Debugf("Noise kind: %s", kind)

		saltHex := decodeSalt
		if saltHex == "" && env.Salt != "" {
			Logger.Debugf("Using salt from ROSECRYPT_SALT")
			saltHex = env.Salt
		}

		passphrase, err := resolvePassphrase(decodeKey, env)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read passphrase: %v", err)
		}

		spinner, cleanup := startSpinner("Recovering payload...", verbose)
		defer cleanup()

		result, err := workflows.Decode(context.Background(), workflows.DecodeOptions{
			Passphrase: passphrase,
			InputPath:  decodeIn,
			OutputPath: decodeOut,
			Kind:       kind,
			SaltHex:    saltHex,
		})
		if err != nil {
			spinner.FinalMSG = formatPipelineError(err, "decode")
			return err
		}

		Logger.Infof("Decode command completed successfully")
		Logger.Debugf("Salt source: %s", result.SaltSource)

		if result.OutputPath == "" {
			// Payload goes to stdout; keep it free of decorations.
			if _, err := os.Stdout.Write(result.Payload); err != nil {
				return Logger.ErrorfAndReturn("Failed to write payload to stdout: %v", err)
			}
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + " Payload recovered to " + ui.Path.Sprint(result.OutputPath) + "\n" +
			ui.Info.Sprint("→") + " " + fmt.Sprintf("%d bytes from a %dx%d carrier", len(result.Payload), result.Width, result.Height)
		if result.SaltSource == workflows.SaltSourceSidecar {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Used the salt sidecar next to the carrier"
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
