package exporters

import (
	"context"

	"github.com/mrlokans/clippings/internal/entities"
)

// Sink names, as used on the command line and in audit records
const (
	SinkCSV         = "csv"
	SinkAnkiConnect = "ankiconnect"
)

type NoteExporter interface {
	Export(ctx context.Context, notes entities.NoteCollection) (ExportResult, error)
}

type ExportResult struct {
	Sink           string `json:"sink"`
	NotesProcessed int    `json:"notes_processed"`
	NotesFailed    int    `json:"notes_failed"`
}
