package models

import "time"

// Limits enforced on Note fields; they match the column sizes.
const (
	NoteTitleMaxLen = 100
	NoteBodyMaxLen  = 500
)

// Note is a titled text. Titles are unique. CreatedAt and ModifiedAt are
// assigned by the server.
type Note struct {
	ID         int64
	Title      string
	Body       string
	CreatedAt  time.Time
	ModifiedAt time.Time
}
