package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driven"
	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driving"
	"github.com/rustic-ai/codeprism-sub002/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncOrchestrator = (*SyncService)(nil)

// SyncService feeds connector output into the content index.
type SyncService struct {
	content *ContentService
}

// NewSyncService creates a sync service indexing through the given
// content service.
func NewSyncService(content *ContentService) *SyncService {
	return &SyncService{content: content}
}

// SyncAll streams every file from the connector into the index and returns
// the number of files indexed. Per-file parse failures are logged and
// skipped; a connector error aborts the sync.
func (s *SyncService) SyncAll(ctx context.Context, connector driven.Connector) (int, error) {
	logger.Section("Full Sync")
	logger.Debug("Source: %s (%s)", connector.SourceID(), connector.Type())

	files, errs := connector.FullSync(ctx)

	indexed := 0
	for file := range files {
		if _, err := s.content.IndexFile(file.Path, string(file.Content)); err != nil {
			logger.Warn("Skipping %s: %v", file.Path, err)
			continue
		}
		indexed++
	}

	if err, ok := <-errs; ok && err != nil {
		if errors.Is(err, context.Canceled) {
			return indexed, err
		}
		return indexed, fmt.Errorf("sync %s: %w", connector.SourceID(), err)
	}

	logger.Info("Indexed %d files from %s", indexed, connector.SourceID())
	return indexed, nil
}

// WatchAndIndex applies connector change events to the index until the
// context is cancelled or the connector stops producing.
func (s *SyncService) WatchAndIndex(ctx context.Context, connector driven.Connector) error {
	logger.Section("Watch")
	logger.Debug("Source: %s (%s)", connector.SourceID(), connector.Type())

	changes, err := connector.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", connector.SourceID(), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			s.applyChange(change)
		}
	}
}

func (s *SyncService) applyChange(change domain.FileChange) {
	switch change.Kind {
	case domain.UpdateCreated, domain.UpdateModified:
		if _, err := s.content.IndexFile(change.File.Path, string(change.File.Content)); err != nil {
			logger.Warn("Reindex %s: %v", change.File.Path, err)
		}
	case domain.UpdateDeleted:
		if err := s.content.RemoveFile(change.File.Path); err != nil {
			logger.Warn("Remove %s: %v", change.File.Path, err)
		}
	}
}
