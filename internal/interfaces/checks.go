package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/clippings/internal/ankiconnect"
	"github.com/mrlokans/clippings/internal/audit"
	"github.com/mrlokans/clippings/internal/database"
	"github.com/mrlokans/clippings/internal/exporters"
	"github.com/mrlokans/clippings/internal/http"
	"github.com/mrlokans/clippings/internal/scheduler"
	"github.com/mrlokans/clippings/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// NoteRecorder implementations
var _ exporters.NoteRecorder = (*database.Database)(nil)

// ExportHistory implementations
var _ http.ExportHistory = (*database.Database)(nil)

// =============================================================================
// External Services
// =============================================================================

// NoteCreator implementations
var _ exporters.NoteCreator = (*ankiconnect.Client)(nil)

// AnkiClient implementations
var _ http.AnkiClient = (*ankiconnect.Client)(nil)

// =============================================================================
// Background Jobs
// =============================================================================

// Audit cleanup collaborators
var _ scheduler.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.CleanupReporter = (*audit.Service)(nil)
var _ http.CleanupSchedule = (*scheduler.AuditCleanupScheduler)(nil)

// Task queue
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.SnapshotSaver = (*audit.Auditor)(nil)
