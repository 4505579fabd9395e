package models

import "time"

// Attachment represents metadata of an uploaded document a poll is about.
// Only the metadata lives here; the bytes are kept by an external file store
// addressed by Path.
type Attachment struct {
	// ID is the opaque storage identifier of the file.
	ID string `gorm:"primaryKey;size:255"`
	// Path is the location of the file in the external store.
	Path string `gorm:"size:255;not null"`
	// Filename is the original name the file was uploaded with.
	Filename string `gorm:"size:255;not null"`
	// CreatedByID is the user who uploaded the file.
	CreatedByID uint64
	// CreatedAt is the timestamp when the file was uploaded (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Attachment model.
func (Attachment) TableName() string {
	return "files"
}
