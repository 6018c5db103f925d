package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/clippings/internal/entities"
)

// SnapshotSaver writes the JSON snapshot of a parsed clippings file.
type SnapshotSaver interface {
	SaveSnapshot(sourceFile string, blocks, skipped int, notes entities.NoteCollection) (string, error)
}

// SaveSnapshotTask carries the parse result of one upload to the snapshot
// directory outside of the request.
type SaveSnapshotTask struct {
	SourceFile string                  `json:"source_file"`
	Blocks     int                     `json:"blocks"`
	Skipped    int                     `json:"skipped"`
	Notes      entities.NoteCollection `json:"notes"`
}

func (t SaveSnapshotTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "save_snapshot",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   time.Hour,
			OnlyFailed: true,
		},
	}
}

func SaveSnapshotProcessor(saver SnapshotSaver) backlite.QueueProcessor[SaveSnapshotTask] {
	return func(ctx context.Context, task SaveSnapshotTask) error {
		if saver == nil {
			return fmt.Errorf("snapshot saver not configured")
		}

		filename, err := saver.SaveSnapshot(task.SourceFile, task.Blocks, task.Skipped, task.Notes)
		if err != nil {
			return fmt.Errorf("save snapshot of %s: %w", task.SourceFile, err)
		}

		log.Printf("[TASK] Saved snapshot of %s (%d notes) to %s", task.SourceFile, len(task.Notes), filename)
		return nil
	}
}

func NewSaveSnapshotQueue(saver SnapshotSaver) backlite.Queue {
	return backlite.NewQueue(SaveSnapshotProcessor(saver))
}
