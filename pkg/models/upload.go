package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Upload records an audio file persisted by the upload store. Rows are
// immutable once written; re-uploading the same (chapter, reciter) pair
// overwrites the file on disk and replaces the row.
type Upload struct {
	bun.BaseModel `bun:"table:uploads,alias:up"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"path"`
	Chapter     int       `bun:"chapter" json:"surah"`
	ReciterID   string    `bun:"reciter_id" json:"reciter"`
	SizeBytes   int64     `bun:"size_bytes" json:"size"`
}
