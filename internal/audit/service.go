package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/clippings/internal/database/audit"
	"github.com/mrlokans/clippings/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event passed to LogAsync has been written.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogParse records the outcome of parsing a clippings file.
func (s *Service) LogParse(sourceFile string, blocks, skipped, notes int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventParse,
		Action:      "clippings_parse",
		Description: fmt.Sprintf("Parsed %d notes from %d entries (%d skipped)", notes, blocks, skipped),
		SourceFile:  sourceFile,
		Status:      entities.AuditStatusSuccess,
	}

	event.Metadata = encodeMetadata(map[string]any{
		"blocks_count":  blocks,
		"skipped_count": skipped,
		"notes_count":   notes,
	})

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.Description = "Failed to parse clippings"
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogExport records an export of notes to a sink.
func (s *Service) LogExport(sink, sourceFile string, processed, failed int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      sink + "_export",
		Description: fmt.Sprintf("Exported %d notes to %s", processed, sink),
		SourceFile:  sourceFile,
		Status:      entities.AuditStatusSuccess,
	}

	event.Metadata = encodeMetadata(map[string]any{
		"notes_processed": processed,
		"notes_failed":    failed,
	})

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogCleanup records a retention cleanup run.
func (s *Service) LogCleanup(deleted int64, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCleanup,
		Action:      "audit_cleanup",
		Description: fmt.Sprintf("Deleted %d old audit events", deleted),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func encodeMetadata(metadata map[string]any) string {
	mdBytes, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(mdBytes)
}

// truncate shortens a string to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// GetEvent retrieves a single audit event.
func (s *Service) GetEvent(id uint) (*entities.AuditEvent, error) {
	return s.repo.GetEventByID(id)
}
