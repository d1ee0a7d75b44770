package backend

import (
	"context"
	"time"

	"statistik/internal/source"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// PingFunc checks that a backend can serve requests
type PingFunc func(ctx context.Context) error

// BackendResult contains the transaction source and optional hooks
type BackendResult struct {
	Lister source.TransactionLister
	// Writer is nil for read-only backends
	Writer  source.TransactionWriter
	Ping    PingFunc
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Remote API specific
	APIBaseURL string
	APIToken   string
	APITimeout time.Duration

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Memory backend specific
	DataFile string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
	APIBackend    BackendType = "api"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, SheetsBackend, APIBackend:
		return true
	default:
		return false
	}
}

// Writable reports whether the backend accepts imports
func (bt BackendType) Writable() bool {
	return bt == MemoryBackend || bt == SQLiteBackend
}
