package storage

import (
	"context"
	"time"
)

// StorageClient is the storage backend for generated report artifacts
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores one report artifact in the folder derived from the
	// report timestamp
	StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error

	// GetFile retrieves a file by its storage path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListReports lists stored report pages, newest first
	ListReports(ctx context.Context, limit int) ([]string, error)

	// GetLatestReport returns the path of the most recent report page
	GetLatestReport() (string, error)
}
