package model

import (
	"time"

	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// Note is a free-text annotation on a case. Unlike a Finding it carries no
// provenance and no importance.
type Note struct {
	ID        types.NoteID `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Content   string       `json:"content"`
}
