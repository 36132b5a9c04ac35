package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stewinjo/rosecrypt/internal/configs"
)

// useTempState points the history log at a temp state directory for the
// duration of the test.
func useTempState(t *testing.T) string {
	t.Helper()

	original := configs.UserRosecryptSettings
	stateDir := filepath.Join(t.TempDir(), "state", "rosecrypt")
	configs.UserRosecryptSettings = &configs.UserSettings{
		ConfigDir: filepath.Join(t.TempDir(), "config", "rosecrypt"),
		StateDir:  stateDir,
	}
	t.Cleanup(func() {
		configs.UserRosecryptSettings = original
	})

	return stateDir
}

func TestLog_CreatesFile(t *testing.T) {
	stateDir := useTempState(t)

	Log(Entry{
		Operation: "encode",
		Carrier:   "out.png",
		Width:     64,
		Height:    64,
	})

	logPath := filepath.Join(stateDir, "history.jsonl")
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatalf("History log file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	stateDir := useTempState(t)

	Log(Entry{Operation: "encode", Carrier: "first.png"})
	Log(Entry{Operation: "decode", Carrier: "first.png"})
	Log(Entry{Operation: "encode", Carrier: "second.png"})

	data, err := os.ReadFile(filepath.Join(stateDir, "history.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read history log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_ValidJSON(t *testing.T) {
	stateDir := useTempState(t)

	Log(Entry{
		Operation:    "encode",
		Carrier:      "garden.png",
		Width:        128,
		Height:       96,
		Noise:        "simplex",
		PayloadBytes: 42,
		Compressed:   true,
		DurationMS:   17,
	})

	data, err := os.ReadFile(filepath.Join(stateDir, "history.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read history log: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if parsed.Operation != "encode" {
		t.Errorf("Expected operation encode, got %s", parsed.Operation)
	}
	if parsed.Carrier != "garden.png" {
		t.Errorf("Expected carrier garden.png, got %s", parsed.Carrier)
	}
	if parsed.Width != 128 || parsed.Height != 96 {
		t.Errorf("Expected 128x96, got %dx%d", parsed.Width, parsed.Height)
	}
	if parsed.PayloadBytes != 42 {
		t.Errorf("Expected 42 payload bytes, got %d", parsed.PayloadBytes)
	}
	if !parsed.Compressed {
		t.Errorf("Expected compressed entry")
	}
}

func TestLog_StampsTimestampAndID(t *testing.T) {
	useTempState(t)

	Log(Entry{Operation: "decode"})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Failed to read entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	// Check timestamp format: 2006-01-02T15:04:05.000000Z.
	if entries[0].Timestamp == "" {
		t.Errorf("Timestamp should be auto-set")
	}
	if !strings.HasSuffix(entries[0].Timestamp, "Z") {
		t.Errorf("Timestamp should end with Z, got %s", entries[0].Timestamp)
	}
	if !strings.Contains(entries[0].Timestamp, ".") {
		t.Errorf("Timestamp should contain microseconds, got %s", entries[0].Timestamp)
	}
	if entries[0].ID == "" {
		t.Errorf("Operation ID should be auto-set")
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	stateDir := useTempState(t)

	Log(Entry{Operation: "capacity", Width: 32, Height: 32})

	data, err := os.ReadFile(filepath.Join(stateDir, "history.jsonl"))
	if err != nil {
		t.Fatalf("Failed to read history log: %v", err)
	}

	line := strings.TrimSpace(string(data))
	for _, field := range []string{"carrier", "noise", "payload_bytes", "compressed", "duration_ms"} {
		if strings.Contains(line, field) {
			t.Errorf("Expected %q to be omitted, got %s", field, line)
		}
	}
}

func TestNewEntry(t *testing.T) {
	first := NewEntry("encode")
	second := NewEntry("encode")

	if first.Operation != "encode" {
		t.Errorf("Expected operation encode, got %s", first.Operation)
	}
	if first.ID == "" {
		t.Errorf("Expected a fresh operation ID")
	}
	if first.ID == second.ID {
		t.Errorf("Expected distinct operation IDs, both were %s", first.ID)
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	useTempState(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Expected no error for missing log, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2025-01-02T03:04:05.000000Z","id":"a","op":"encode"}
not json at all
{"ts":"2025-01-02T03:04:06.000000Z","id":"b","op":"decode"}
{"broken":
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "encode" || entries[1].Operation != "decode" {
		t.Errorf("Unexpected operations: %s, %s", entries[0].Operation, entries[1].Operation)
	}
}

func TestParseEntries_Empty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries for empty input, got %v", entries)
	}
}
