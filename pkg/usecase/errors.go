package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the use case layer
var (
	ErrCaseNotFound      = goerr.New("case not found")
	ErrFindingNotFound   = goerr.New("finding not found")
	ErrNoteNotFound      = goerr.New("note not found")
	ErrInvalidToolStatus = goerr.New("invalid tool status")
)

// Context keys for error values
const (
	CaseIDKey    = "case_id"
	FindingIDKey = "finding_id"
	NoteIDKey    = "note_id"
	ToolIDKey    = "tool_id"
	StatusKey    = "status"
)
