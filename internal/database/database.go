package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/clippings/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.AuditEvent{},
		&entities.ExportedNote{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// SaveExportedNotes stores the notes delivered to a sink in one transaction.
func (d *Database) SaveExportedNotes(sink, sourceFile string, notes entities.NoteCollection) error {
	if len(notes) == 0 {
		return nil
	}

	records := make([]entities.ExportedNote, 0, len(notes))
	for _, note := range notes {
		records = append(records, entities.ExportedNote{
			Sink:       sink,
			SourceFile: sourceFile,
			Title:      note.Title,
			Body:       note.Body,
		})
	}

	if err := d.DB.CreateInBatches(records, 100).Error; err != nil {
		return fmt.Errorf("failed to save exported notes: %w", err)
	}
	return nil
}

// GetExportedNotes returns exported notes, most recent first.
func (d *Database) GetExportedNotes(limit, offset int) ([]entities.ExportedNote, int64, error) {
	var notes []entities.ExportedNote
	var total int64

	if err := d.DB.Model(&entities.ExportedNote{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := d.DB.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&notes).Error
	return notes, total, err
}

// CountExportedNotes returns how many notes were delivered to the given sink,
// or to any sink when sink is empty.
func (d *Database) CountExportedNotes(sink string) (int64, error) {
	var count int64
	query := d.DB.Model(&entities.ExportedNote{})
	if sink != "" {
		query = query.Where("sink = ?", sink)
	}
	err := query.Count(&count).Error
	return count, err
}
