package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
	"github.com/stewinjo/rosecrypt/internal/history"
	"github.com/stewinjo/rosecrypt/internal/ui"
	"github.com/stewinjo/rosecrypt/internal/workflows"
)

var (
	historyLimit     int
	historyReverse   bool
	historyOperation string
	historySince     string
	historyUntil     string
	historyOneline   bool
	historyJSON      bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "number", "n", 0, "limit number of entries shown")
	historyCmd.Flags().BoolVar(&historyReverse, "reverse", false, "show most recent entries first")
	historyCmd.Flags().StringVar(&historyOperation, "operation", "", "filter by operation (comma-separated)")
	historyCmd.Flags().StringVar(&historySince, "since", "", "show entries after date (YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&historyUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	historyCmd.Flags().BoolVar(&historyOneline, "oneline", false, "compact one-line format")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON array")
}

// resetHistoryCommandState resets the history command's global state for testing.
func resetHistoryCommandState() {
	historyLimit = 0
	historyReverse = false
	historyOperation = ""
	historySince = ""
	historyUntil = ""
	historyOneline = false
	historyJSON = false
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the operation history log",
	Long: `Displays the history of encode and decode operations.

Shows which carriers were written or read and when. Use filters to narrow
down the results. The log lives in the user state directory and never
records passphrases, salts, or payload content.

Examples:
  rosecrypt history                       # View full history
  rosecrypt history -n 10                 # Last 10 entries
  rosecrypt history --reverse             # Most recent first
  rosecrypt history --operation encode    # Filter by operation
  rosecrypt history --since 2025-01-01    # Filter by date
  rosecrypt history --json                # JSON output`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting history command")

	spinner, cleanup := startSpinner("Loading history...", verbose)
	defer cleanup()

	opts := workflows.HistoryOptions{
		Limit:      historyLimit,
		Reverse:    historyReverse,
		Operations: historyOperation,
		Since:      historySince,
		Until:      historyUntil,
	}

	result, err := workflows.History(context.Background(), opts)
	if err != nil {
		spinner.FinalMSG = formatHistoryError(err)
		if isHistoryUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from history log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		spinner.FinalMSG = ""
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No history entries found.")
		} else {
			fmt.Println("No history entries found matching the filters.")
		}
		return nil
	}

	// Output.
	spinner.FinalMSG = ""
	if historyJSON {
		return outputHistoryJSON(result.Entries)
	}

	if historyOneline {
		outputHistoryOneline(result.Entries)
		return nil
	}

	outputHistoryDefault(result.Entries)
	return nil
}

// formatHistoryError formats a history error for display to the user.
func formatHistoryError(err error) string {
	switch {
	case errors.Is(err, rcerrors.ErrNoHistory):
		return ui.Info.Sprint("ℹ") + " No history yet. Operations will be logged after running " +
			ui.Code.Sprint("rosecrypt encode") + " or " + ui.Code.Sprint("rosecrypt decode")

	case errors.Is(err, rcerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to read history: " + err.Error()
	}
}

// isHistoryUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isHistoryUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, rcerrors.ErrNoHistory),
		errors.Is(err, rcerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

func outputHistoryJSON(entries []history.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputHistoryOneline(entries []history.Entry) {
	for _, e := range entries {
		date := workflows.FormatDate(e.Timestamp)
		details := workflows.FormatDetailsOneline(e)
		fmt.Printf("%s %s %s\n", date, e.Operation, details)
	}
}

func outputHistoryDefault(entries []history.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-6s  %s\n", datetime, e.Operation, details)
	}
}
