package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
	"github.com/stewinjo/rosecrypt/internal/history"
)

// HistoryOptions configures the history workflow.
type HistoryOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation names (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// HistoryResult contains the outcome of a history query.
type HistoryResult struct {
	// Entries are the filtered history entries.
	Entries []history.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// History reads and filters the operation history log.
//
// Returns ErrNoHistory if no history log exists yet.
// Returns ErrInvalidDateFormat if a date filter is malformed.
func History(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
	logPath := history.LogPath()
	if logPath == "" {
		return nil, rcerrors.ErrNoHistory
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, rcerrors.ErrNoHistory
	}
	if err != nil {
		return nil, fmt.Errorf("reading history log: %w", err)
	}

	entries, err := history.ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("parsing history log: %w", err)
	}

	result := &HistoryResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	filtered := entries

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", rcerrors.ErrInvalidDateFormat)
		}
		filtered = filterSince(filtered, sinceTime)
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", rcerrors.ErrInvalidDateFormat)
		}
		// Include the entire day by setting to end of day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterUntil(filtered, untilTime)
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// filterByOperations filters entries by operation names.
func filterByOperations(entries []history.Entry, ops []string) []history.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}

	var result []history.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

// filterSince filters entries to only include those at or after the given time.
func filterSince(entries []history.Entry, since time.Time) []history.Entry {
	var result []history.Entry
	for _, e := range entries {
		t, err := parseEntryTime(e.Timestamp)
		if err != nil {
			continue
		}
		if !t.Before(since) {
			result = append(result, e)
		}
	}
	return result
}

// filterUntil filters entries to only include those at or before the given time.
func filterUntil(entries []history.Entry, until time.Time) []history.Entry {
	var result []history.Entry
	for _, e := range entries {
		t, err := parseEntryTime(e.Timestamp)
		if err != nil {
			continue
		}
		if !t.After(until) {
			result = append(result, e)
		}
	}
	return result
}

// parseEntryTime parses a history timestamp, accepting RFC3339 as an
// alternate form for entries written by other tools.
func parseEntryTime(ts string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}

// FormatDate formats a history timestamp to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, err := parseEntryTime(ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a history timestamp to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := parseEntryTime(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a history entry.
func FormatDetails(e history.Entry) string {
	switch e.Operation {
	case "encode", "decode":
		details := fmt.Sprintf("%s (%dx%d, %d bytes", e.Carrier, e.Width, e.Height, e.PayloadBytes)
		if e.Compressed {
			details += ", compressed"
		}
		return details + ")"
	default:
		return ""
	}
}

// FormatDetailsOneline formats the details for a history entry in oneline format.
func FormatDetailsOneline(e history.Entry) string {
	switch e.Operation {
	case "encode", "decode":
		return fmt.Sprintf("%s %d bytes", e.Carrier, e.PayloadBytes)
	default:
		return ""
	}
}
