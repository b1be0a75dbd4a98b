package types

import (
	"github.com/google/uuid"
)

// CaseID identifies a case. Assigned at creation, immutable afterwards.
type CaseID string

// String returns the string representation of CaseID
func (i CaseID) String() string {
	return string(i)
}

// FindingID identifies a finding within a case
type FindingID string

// String returns the string representation of FindingID
func (i FindingID) String() string {
	return string(i)
}

// NoteID identifies a note within a case
type NoteID string

// String returns the string representation of NoteID
func (i NoteID) String() string {
	return string(i)
}

// SearchID identifies a captured search snapshot
type SearchID string

// String returns the string representation of SearchID
func (i SearchID) String() string {
	return string(i)
}

// ToolID identifies a tool entry in the external tool database. The value is
// opaque to the case store; the caller's convention is "<categoryId>-<index>".
type ToolID string

// String returns the string representation of ToolID
func (i ToolID) String() string {
	return string(i)
}

// NewID generates a prefixed identifier, unique within the process lifetime.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// NewCaseID generates a new case identifier
func NewCaseID() CaseID {
	return CaseID(NewID("case"))
}

// NewFindingID generates a new finding identifier
func NewFindingID() FindingID {
	return FindingID(NewID("finding"))
}

// NewNoteID generates a new note identifier
func NewNoteID() NoteID {
	return NoteID(NewID("note"))
}

// NewSearchID generates a new search snapshot identifier
func NewSearchID() SearchID {
	return SearchID(NewID("search"))
}
