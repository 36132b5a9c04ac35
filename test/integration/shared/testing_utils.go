// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and running commands through the real CLI wiring.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/stewinjo/rosecrypt/cmd"
	"github.com/stewinjo/rosecrypt/internal/configs"
	logger "github.com/stewinjo/rosecrypt/internal/logging"
)

// SetupTestEnvironment points user config and state at temporary directories.
func SetupTestEnvironment(t *testing.T, tempUserDir string, originalUserSettings *configs.UserSettings) {
	// Cleanup function to restore original state
	t.Cleanup(func() {
		configs.UserRosecryptSettings = originalUserSettings
		cmd.ResetGlobalState()
	})

	// Override user settings to use temp directories
	configs.UserRosecryptSettings = &configs.UserSettings{
		ConfigDir: filepath.Join(tempUserDir, "config", "rosecrypt"),
		StateDir:  filepath.Join(tempUserDir, "state", "rosecrypt"),
	}
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI prepares the real CLI for a test run with the specified
// arguments and flags.
func CreateTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Reset state left behind by previous runs in the same process.
	cmd.ResetGlobalState()

	// Set global flags for the actual command implementations.
	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)

	// Initialize the logger with the test flags.
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	rootCmd := cmd.GetRootCmd()

	// Set output streams
	if stdout != nil {
		rootCmd.SetOut(stdout)
		for _, subcmd := range rootCmd.Commands() {
			subcmd.SetOut(stdout)
		}
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
		for _, subcmd := range rootCmd.Commands() {
			subcmd.SetErr(stderr)
		}
	}

	rootCmd.SetArgs(args)

	return rootCmd
}
