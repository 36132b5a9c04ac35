package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/stewinjo/rosecrypt/internal/configs"
	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
	"github.com/stewinjo/rosecrypt/internal/noise"
	"github.com/stewinjo/rosecrypt/internal/ui"
	"github.com/stewinjo/rosecrypt/internal/utils"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// The spinner animates on stderr so that decode can stream a payload to
// stdout without spinner frames mixed in.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The
// cleanup function automatically calls ui.EnsureNewline() on the final
// message before printing it. This ensures consistent output formatting
// across all commands.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			Logger.Debugf("Restoring log output")
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// resolvePassphrase returns the passphrase from the --key flag, the
// ROSECRYPT_KEY environment variable, or an interactive no-echo prompt,
// in that order.
func resolvePassphrase(flagValue string, env *configs.EnvOverrides) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if env.Key != "" {
		Logger.Debugf("Using passphrase from ROSECRYPT_KEY")
		return env.Key, nil
	}

	// Stdin may already be carrying the payload, so fall back to the TTY.
	switch {
	case utils.IsTerminal():
		passphrase, err := utils.ReadPassphrase("Passphrase: ")
		if err != nil {
			return "", err
		}
		return string(passphrase), nil
	case utils.IsTTYAvailable():
		passphrase, err := utils.ReadPassphraseFromTTY("Passphrase: ")
		if err != nil {
			return "", err
		}
		return string(passphrase), nil
	default:
		return "", fmt.Errorf("no passphrase given: use --key or ROSECRYPT_KEY when no terminal is available")
	}
}

// readPayload loads the payload from a file, or from stdin when the path
// is empty or "-".
func readPayload(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return utils.ReadStdin()
	}
	return os.ReadFile(path)
}

// noiseKindOrDefault applies the noise kind precedence: the --noise flag
// when set, then ROSECRYPT_NOISE, then the configured default.
func noiseKindOrDefault(cmd *cobra.Command, flagKind noise.Kind, env *configs.EnvOverrides, settings *configs.Settings) (noise.Kind, error) {
	if cmd.Flags().Changed("noise") {
		return flagKind, nil
	}
	if env.Noise != "" {
		Logger.Debugf("Using noise kind from ROSECRYPT_NOISE")
		return noise.ParseKind(env.Noise)
	}
	if settings.Defaults.Noise != "" {
		return noise.ParseKind(settings.Defaults.Noise)
	}
	return flagKind, nil
}

// formatPipelineError renders a workflow error as a spinner final message.
func formatPipelineError(err error, op string) string {
	switch {
	case errors.Is(err, rcerrors.ErrInvalidKey):
		return ui.Error.Sprint("✗") + " The passphrase must not be empty"

	case errors.Is(err, rcerrors.ErrInvalidSalt):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Salts are 32 hex characters; " + ui.Flag.Sprint("--random-salt") + " generates one for you"

	case errors.Is(err, rcerrors.ErrPayloadTooLarge):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Use a larger carrier, or try " + ui.Flag.Sprint("--compress")

	case errors.Is(err, rcerrors.ErrCapacityExceeded):
		return ui.Error.Sprint("✗") + " The embedded length does not fit this carrier\n" +
			ui.Info.Sprint("→") + " The image was likely resized or re-encoded after encoding"

	case errors.Is(err, rcerrors.ErrChecksumMismatch):
		return ui.Error.Sprint("✗") + " Checksum mismatch\n" +
			ui.Info.Sprint("→") + " Wrong key, wrong salt or noise kind, or an image that carries no payload"

	case errors.Is(err, rcerrors.ErrInvalidDimensions):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, rcerrors.ErrUnsupportedFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, rcerrors.ErrOutputExists):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to " + op + ": " + err.Error()
	}
}
