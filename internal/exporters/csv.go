package exporters

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mrlokans/clippings/internal/entities"
)

// CSVExporter writes one "title,body" record per note, without a header row.
type CSVExporter struct {
	w io.Writer
}

func NewCSVExporter(w io.Writer) *CSVExporter {
	return &CSVExporter{w: w}
}

func (e *CSVExporter) Export(_ context.Context, notes entities.NoteCollection) (ExportResult, error) {
	result := ExportResult{Sink: SinkCSV}
	writer := csv.NewWriter(e.w)

	for _, note := range notes {
		if err := writer.Write([]string{note.Title, note.Body}); err != nil {
			result.NotesFailed = len(notes) - result.NotesProcessed
			return result, fmt.Errorf("failed to write CSV record: %w", err)
		}
		result.NotesProcessed++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return result, fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return result, nil
}
