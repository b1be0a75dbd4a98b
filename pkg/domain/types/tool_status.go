package types

import "fmt"

// ToolStatus represents the per-tool-per-case review state
type ToolStatus string

const (
	ToolStatusUnchecked  ToolStatus = "unchecked"
	ToolStatusUseful     ToolStatus = "useful"
	ToolStatusDeadEnd    ToolStatus = "dead-end"
	ToolStatusFollowUp   ToolStatus = "follow-up"
	ToolStatusInProgress ToolStatus = "in-progress"
)

// AllToolStatuses returns all valid tool statuses, in display order
func AllToolStatuses() []ToolStatus {
	return []ToolStatus{
		ToolStatusUseful,
		ToolStatusDeadEnd,
		ToolStatusFollowUp,
		ToolStatusInProgress,
		ToolStatusUnchecked,
	}
}

// IsValid checks if the tool status is valid
func (s ToolStatus) IsValid() bool {
	switch s {
	case ToolStatusUnchecked,
		ToolStatusUseful,
		ToolStatusDeadEnd,
		ToolStatusFollowUp,
		ToolStatusInProgress:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tool status
func (s ToolStatus) String() string {
	return string(s)
}

// Label returns the human-readable display label
func (s ToolStatus) Label() string {
	switch s {
	case ToolStatusUnchecked:
		return "Unchecked"
	case ToolStatusUseful:
		return "Useful"
	case ToolStatusDeadEnd:
		return "Dead End"
	case ToolStatusFollowUp:
		return "Follow Up"
	case ToolStatusInProgress:
		return "In Progress"
	default:
		return string(s)
	}
}

// Icon returns the marker used in Markdown report tallies
func (s ToolStatus) Icon() string {
	switch s {
	case ToolStatusUnchecked:
		return "⬜"
	case ToolStatusUseful:
		return "✅"
	case ToolStatusDeadEnd:
		return "❌"
	case ToolStatusFollowUp:
		return "🔖"
	case ToolStatusInProgress:
		return "🔄"
	default:
		return "•"
	}
}

// ParseToolStatus parses a string into a ToolStatus
func ParseToolStatus(s string) (ToolStatus, error) {
	status := ToolStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid tool status: %s", s)
	}
	return status, nil
}
