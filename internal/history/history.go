package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/stewinjo/rosecrypt/internal/configs"
	"github.com/stewinjo/rosecrypt/internal/utils"
)

// Entry represents a single history log entry.
type Entry struct {
	Timestamp string `json:"ts"`                // RFC3339 with microseconds.
	ID        string `json:"id"`                // UUID of this operation.
	Operation string `json:"op"`                // Operation name (encode or decode).
	User      string `json:"user,omitempty"`    // System user that ran the operation.
	Host      string `json:"host,omitempty"`    // Machine the operation ran on.
	Install   string `json:"install,omitempty"` // Install ID from the settings file.

	// Optional fields depending on operation.
	Carrier      string `json:"carrier,omitempty"`       // Carrier image path.
	Width        int    `json:"width,omitempty"`         // Carrier width in pixels.
	Height       int    `json:"height,omitempty"`        // Carrier height in pixels.
	Noise        string `json:"noise,omitempty"`         // Noise kind used.
	PayloadBytes int    `json:"payload_bytes,omitempty"` // Payload size before framing.
	Compressed   bool   `json:"compressed,omitempty"`    // Whether the payload was compressed.
	DurationMS   int64  `json:"duration_ms,omitempty"`   // Wall-clock time of the operation.
}

// NewEntry returns an entry for op with a fresh operation ID. The user,
// host, and install fields are filled in when available.
func NewEntry(op string) Entry {
	entry := Entry{
		ID:        uuid.New().String(),
		Operation: op,
	}
	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}
	if host, err := utils.GetHostname(); err == nil {
		entry.Host = host
	}
	if settings, err := configs.LoadSettings(); err == nil {
		entry.Install = settings.InstallID
	}
	return entry
}

// Log appends an entry to the history log.
// If logging fails, the entry is dropped silently. Operations should not
// fail just because history logging failed.
func Log(entry Entry) {
	// Set timestamp and ID if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	// The state directory may not exist on first run.
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	// Open file for appending (create if doesn't exist).
	// #nosec G306 -- the history log holds no key material.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	// Write entry with newline.
	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the history log file.
// Returns empty string if user settings are not available.
func LogPath() string {
	if configs.UserRosecryptSettings == nil || configs.UserRosecryptSettings.StateDir == "" {
		return ""
	}
	return filepath.Join(configs.UserRosecryptSettings.StateDir, "history.jsonl")
}

// ReadEntries reads all entries from the history log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into history entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
