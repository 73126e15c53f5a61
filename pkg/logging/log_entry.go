package logging

// LogEntry represents a structured log record with fields particularly
// relevant to evolution session operations.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Evolution-specific fields
	SessionID  string // The session being operated on
	Generation int    // Generation number, -1 when not applicable

	// General structured data
	Fields map[string]interface{}
}
