package types

// EventType tags a timeline event with the kind of activity that produced it.
// The set is open: unknown tags are preserved on import rather than rejected.
type EventType string

const (
	EventCreated EventType = "created"
	EventSearch  EventType = "search"
	EventStatus  EventType = "status"
	EventFinding EventType = "finding"
	EventNote    EventType = "note"
)

// String returns the string representation of the event type
func (t EventType) String() string {
	return string(t)
}
