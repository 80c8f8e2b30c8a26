package types

import (
	"time"
)

// Blob is a single file stored in the public blob area, addressed by its
// file path (eg. products/pen-7f68d630.jpg).
type Blob struct {
	FilePath      string    `json:"file_path" db:"file_path"`
	FileName      string    `json:"file_name" db:"file_name"`
	MimeType      string    `json:"mime_type" db:"mime_type"`
	FileSizeBytes int64     `json:"file_size_bytes" db:"file_size_bytes"`
	Extension     string    `json:"extension" db:"extension"`
	File          []byte    `json:"file" db:"file"`
	Hash          *string   `json:"hash" db:"hash"`
	Public        bool      `json:"public" db:"public"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
