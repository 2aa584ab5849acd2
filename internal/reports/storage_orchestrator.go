package reports

import (
	"context"
	"fmt"
	"time"

	"covidcast/internal/logger"
	"covidcast/internal/storage"
)

// StorageOrchestrator handles storing generated report files
type StorageOrchestrator struct {
	storage storage.StorageClient
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(client storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{storage: client}
}

// StoreAllFiles stores the page, JSON artifacts, and assets into the
// timestamped report folder
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles, timestamp time.Time) error {
	if err := so.storage.StoreFile(ctx, []byte(files.HTMLContent), "index.html", timestamp); err != nil {
		return fmt.Errorf("failed to store HTML report: %w", err)
	}

	for filename, data := range files.JSONFiles {
		if err := so.storage.StoreFile(ctx, data, filename, timestamp); err != nil {
			return fmt.Errorf("failed to store JSON file %s: %w", filename, err)
		}
	}

	for filename, data := range files.AssetFiles {
		if err := so.storage.StoreFile(ctx, data, filename, timestamp); err != nil {
			return fmt.Errorf("failed to store asset file %s: %w", filename, err)
		}
	}

	logger.Infof("Stored report and %d artifacts in %s",
		len(files.JSONFiles)+len(files.AssetFiles), files.FolderPath)
	return nil
}
