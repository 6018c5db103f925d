package exporters

import (
	"context"
	"log"

	"github.com/mrlokans/clippings/internal/entities"
)

// NoteRecorder persists the notes delivered to a sink.
type NoteRecorder interface {
	SaveExportedNotes(sink, sourceFile string, notes entities.NoteCollection) error
}

// RecordingExporter wraps another exporter and records every note it
// delivered in the history database.
type RecordingExporter struct {
	next       NoteExporter
	recorder   NoteRecorder
	sourceFile string
}

func NewRecordingExporter(next NoteExporter, recorder NoteRecorder, sourceFile string) *RecordingExporter {
	return &RecordingExporter{
		next:       next,
		recorder:   recorder,
		sourceFile: sourceFile,
	}
}

// Export delegates to the wrapped exporter. Notes are recorded only when the
// whole collection was delivered. A failing history write is only logged.
func (e *RecordingExporter) Export(ctx context.Context, notes entities.NoteCollection) (ExportResult, error) {
	result, err := e.next.Export(ctx, notes)
	if err != nil {
		return result, err
	}

	if err := e.recorder.SaveExportedNotes(result.Sink, e.sourceFile, notes); err != nil {
		log.Printf("Failed to record %d exported notes: %v", len(notes), err)
	}

	return result, nil
}

// Compile-time interface implementation checks
var _ NoteExporter = (*CSVExporter)(nil)
var _ NoteExporter = (*AnkiConnectExporter)(nil)
var _ NoteExporter = (*RecordingExporter)(nil)
