package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/clippings/internal/entities"
)

// Snapshot is the JSON document written for every parsed clippings file.
type Snapshot struct {
	SourceFile string                  `json:"source_file"`
	ParsedAt   time.Time               `json:"parsed_at"`
	Blocks     int                     `json:"blocks"`
	Skipped    int                     `json:"skipped"`
	Notes      entities.NoteCollection `json:"notes"`
}

// Auditor keeps JSON snapshots of parsed notes so a run can be inspected or
// replayed after the fact.
type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// SaveSnapshot writes the notes parsed from sourceFile and returns the
// snapshot filename.
func (a *Auditor) SaveSnapshot(sourceFile string, blocks, skipped int, notes entities.NoteCollection) (string, error) {
	if notes == nil {
		notes = entities.NoteCollection{}
	}
	return a.SaveJSON(Snapshot{
		SourceFile: sourceFile,
		ParsedAt:   time.Now().UTC(),
		Blocks:     blocks,
		Skipped:    skipped,
		Notes:      notes,
	})
}

// SaveJSON saves the provided data as JSON to a file with UUID4 filename
func (a *Auditor) SaveJSON(data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	auditID := uuid.New()
	filename := fmt.Sprintf("%s.json", auditID.String())
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("Saved audit snapshot: %s", path)

	return filename, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
