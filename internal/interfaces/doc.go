// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Note Sinks
//
//   - NoteExporter: Deliver a note collection somewhere (internal/exporters/generic.go)
//   - NoteCreator: Create flashcards from notes (internal/exporters/ankiconnect.go)
//   - NoteRecorder: Persist delivered notes (internal/exporters/recording.go)
//
// ## HTTP Dependencies
//
//   - AnkiClient: NoteCreator plus a version probe for health checks (internal/http/config.go)
//   - ExportHistory: Read and count exported notes (internal/http/history.go)
//   - CleanupSchedule: Next audit cleanup run for health checks (internal/http/health.go)
//
// ## Background Jobs
//
//   - AuditEventCleaner: Delete expired audit events (internal/scheduler/audit_cleanup.go)
//   - CleanupReporter: Record cleanup runs (internal/scheduler/audit_cleanup.go)
//
// # Adding a New Sink
//
// To send notes to another destination (e.g., a Mochi deck):
//
//  1. Implement NoteExporter in internal/exporters/
//
//     type MochiExporter struct {
//         client *mochi.Client
//     }
//
//     func (e *MochiExporter) Export(ctx context.Context, notes entities.NoteCollection) (ExportResult, error)
//
//     var _ NoteExporter = (*MochiExporter)(nil)
//
//  2. Select it in internal/cli/export.go and in the sink switch of
//     internal/http/clippings.go
//
//  3. Wrap it with NewRecordingExporter so delivered notes reach the history store
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
