package http

import (
	"context"

	"github.com/mrlokans/clippings/internal/audit"
	"github.com/mrlokans/clippings/internal/clippings"
	"github.com/mrlokans/clippings/internal/database"
	"github.com/mrlokans/clippings/internal/exporters"
)

// AnkiClient is the part of the AnkiConnect client the HTTP layer needs.
type AnkiClient interface {
	exporters.NoteCreator
	Version(ctx context.Context) (int, error)
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Markers  *clippings.Markers
	Database *database.Database

	// Audit trail (all optional)
	AuditService *audit.Service
	Auditor      *audit.Auditor
	AuditCleanup CleanupSchedule

	// Flashcard sink (optional)
	AnkiClient AnkiClient

	// Background tasks (optional). Snapshots are queued instead of written
	// inline when set.
	TaskQueue          TaskQueue
	AuditRetentionDays int

	// Application info
	Version string
}
