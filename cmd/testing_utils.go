// Package cmd contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and running commands through the real CLI wiring.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/stewinjo/rosecrypt/internal/configs"
	logger "github.com/stewinjo/rosecrypt/internal/logging"
)

// setupTestEnvironment points user config and state at temp directories.
func setupTestEnvironment(t *testing.T, tempUserDir string) {
	originalSettings := configs.UserRosecryptSettings

	t.Cleanup(func() {
		configs.UserRosecryptSettings = originalSettings
		ResetGlobalState()
	})

	// Override user settings to use temp directories.
	configs.UserRosecryptSettings = &configs.UserSettings{
		ConfigDir: filepath.Join(tempUserDir, "config", "rosecrypt"),
		StateDir:  filepath.Join(tempUserDir, "state", "rosecrypt"),
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr.
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output.
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr.
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output.
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes.
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

	// Execute the function.
	err := fn()

	// Close writers to signal EOF.
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr.
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output.
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI prepares the real root command for a test run with the
// given arguments and flags.
func createTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Set global flags for the actual command implementations.
	verbose = verboseFlag
	debug = debugFlag

	// Initialize the logger with the test flags.
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	if stdout != nil {
		RootCmd.SetOut(stdout)
		encodeCmd.SetOut(stdout)
		decodeCmd.SetOut(stdout)
		capacityCmd.SetOut(stdout)
		historyCmd.SetOut(stdout)
		versionCmd.SetOut(stdout)
	}
	if stderr != nil {
		RootCmd.SetErr(stderr)
		encodeCmd.SetErr(stderr)
		decodeCmd.SetErr(stderr)
		capacityCmd.SetErr(stderr)
		historyCmd.SetErr(stderr)
		versionCmd.SetErr(stderr)
	}

	RootCmd.SetArgs(args)

	return RootCmd
}
