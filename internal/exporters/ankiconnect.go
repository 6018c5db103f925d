package exporters

import (
	"context"
	"fmt"

	"github.com/mrlokans/clippings/internal/entities"
)

// NoteCreator creates flashcards from notes.
type NoteCreator interface {
	AddNotes(ctx context.Context, notes []entities.Note) (int, error)
}

// AnkiConnectExporter sends notes to Anki through the AnkiConnect add-on.
type AnkiConnectExporter struct {
	client NoteCreator
}

func NewAnkiConnectExporter(client NoteCreator) *AnkiConnectExporter {
	return &AnkiConnectExporter{client: client}
}

func (e *AnkiConnectExporter) Export(ctx context.Context, notes entities.NoteCollection) (ExportResult, error) {
	created, err := e.client.AddNotes(ctx, notes)
	result := ExportResult{
		Sink:           SinkAnkiConnect,
		NotesProcessed: created,
		NotesFailed:    len(notes) - created,
	}
	if err != nil {
		return result, fmt.Errorf("failed to send notes to AnkiConnect: %w", err)
	}
	return result, nil
}
