package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stewinjo/rosecrypt/internal/configs"
	"github.com/stewinjo/rosecrypt/internal/noise"
	"github.com/stewinjo/rosecrypt/internal/ui"
	"github.com/stewinjo/rosecrypt/internal/workflows"
)

var (
	encodeKey        string
	encodeIn         string
	encodeOut        string
	encodeWidth      int
	encodeHeight     int
	encodeNoise      = noise.Perlin
	encodeSalt       string
	encodeRandomSalt bool
	encodeCompress   bool
	encodeForce      bool
)

func init() {
	encodeCmd.Flags().StringVarP(&encodeKey, "key", "k", "", "passphrase (falls back to $ROSECRYPT_KEY, then a prompt)")
	encodeCmd.Flags().StringVarP(&encodeIn, "in", "i", "", "payload file to embed ('-' or omitted reads stdin)")
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "carrier image to write (.png or .bmp)")
	encodeCmd.Flags().IntVar(&encodeWidth, "width", 0, "carrier width in pixels (omit both to auto-size)")
	encodeCmd.Flags().IntVar(&encodeHeight, "height", 0, "carrier height in pixels (omit both to auto-size)")
	encodeCmd.Flags().VarP(&encodeNoise, "noise", "n", "noise baseline: perlin or simplex")
	encodeCmd.Flags().StringVar(&encodeSalt, "salt", "", "hex-encoded key derivation salt")
	encodeCmd.Flags().BoolVar(&encodeRandomSalt, "random-salt", false, "derive keys from a fresh salt, saved to a sidecar file")
	encodeCmd.Flags().BoolVarP(&encodeCompress, "compress", "c", false, "compress the payload when that makes it smaller")
	encodeCmd.Flags().BoolVarP(&encodeForce, "force", "f", false, "overwrite an existing output file")

	_ = encodeCmd.MarkFlagRequired("out")
	encodeCmd.MarkFlagsMutuallyExclusive("salt", "random-salt")
	encodeCmd.MarkFlagsRequiredTogether("width", "height")
}

// resetEncodeCommandState resets the encode command's global state for testing.
func resetEncodeCommandState() {
	encodeKey = ""
	encodeIn = ""
	encodeOut = ""
	encodeWidth = 0
	encodeHeight = 0
	encodeNoise = noise.Perlin
	encodeSalt = ""
	encodeRandomSalt = false
	encodeCompress = false
	encodeForce = false
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Render a noise image with a payload hidden inside it",
	Long: `Renders a procedural noise image and scatters the payload across it along
a key-derived walk.

The carrier looks like ordinary generative art; without the passphrase
there is no way to tell that the deviations from the noise baseline carry
data. Omit --width and --height to get the smallest square that fits.

Examples:
  rosecrypt encode -i secret.txt -o art.png                 # auto-sized
  rosecrypt encode -i secret.txt -o art.png --width 256 --height 256
  echo "meet at noon" | rosecrypt encode -o note.png --random-salt
  rosecrypt encode -i big.tar -o art.bmp --compress`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encode command")

		settings, err := configs.EnsureSettings()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load settings: %v", err)
		}
		env, err := configs.LoadEnv()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read environment overrides: %v", err)
		}

		kind, err := noiseKindOrDefault(cmd, encodeNoise, env, settings)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve noise kind: %v", err)
		}
		Logger.Debugf("Noise kind: %s", kind)

		saltHex := encodeSalt
		if saltHex == "" && !encodeRandomSalt && env.Salt != "" {
			Logger.Debugf("Using salt from ROSECRYPT_SALT")
			saltHex = env.Salt
		}

		compress := encodeCompress
		if !cmd.Flags().Changed("compress") {
			compress = settings.Defaults.Compress
		}

		passphrase, err := resolvePassphrase(encodeKey, env)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read passphrase: %v", err)
		}

		payload, err := readPayload(encodeIn)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read payload: %v", err)
		}
		Logger.Debugf("Read %d payload bytes", len(payload))

		spinner, cleanup := startSpinner("Rendering carrier...", verbose)
		defer cleanup()

		result, err := workflows.Encode(context.Background(), workflows.EncodeOptions{
			Passphrase: passphrase,
			Payload:    payload,
			OutputPath: encodeOut,
			Width:      encodeWidth,
			Height:     encodeHeight,
			Kind:       kind,
			SaltHex:    saltHex,
			RandomSalt: encodeRandomSalt,
			Compress:   compress,
			Force:      encodeForce,
		})
		if err != nil {
			spinner.FinalMSG = formatPipelineError(err, "encode")
			return err
		}

		Logger.Infof("Encode command completed successfully")

		usage := fmt.Sprintf("%dx%d %s carrier, %d of %d payload bytes used",
			result.Width, result.Height, kind.String(), result.PayloadBytes, result.CapacityBytes)
		if result.Compressed {
			usage += " (compressed)"
		}

		finalMessage := ui.Success.Sprint("✓") + " Payload hidden in " + ui.Path.Sprint(result.OutputPath) + "\n" +
			ui.Info.Sprint("→") + " " + usage
		if result.SaltPath != "" {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Salt saved to " + ui.Path.Sprint(result.SaltPath) +
				"; decoding needs it (or " + ui.Flag.Sprint("--salt") + " " + result.Salt + ")"
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
