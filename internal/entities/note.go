package entities

import "time"

// Note is a single cleaned clipping: the book title and the consolidated
// text of the highlight or note.
type Note struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NoteCollection keeps notes in the order they appear in the clippings file.
type NoteCollection []Note

// ExportedNote records a note that was delivered to a sink.
type ExportedNote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Sink       string    `gorm:"index;size:20" json:"sink"` // "csv" or "ankiconnect"
	SourceFile string    `gorm:"size:1024" json:"source_file,omitempty"`
	Title      string    `gorm:"index;size:512" json:"title"`
	Body       string    `gorm:"type:text" json:"body"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (ExportedNote) TableName() string {
	return "exported_notes"
}
