package types

import "fmt"

// Importance represents how significant a finding is. It shares its value set
// with Priority but is a distinct type: a case's priority and a finding's
// importance are unrelated judgements.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// AllImportances returns all valid importance levels, most significant first.
// Report serializers group findings in this order.
func AllImportances() []Importance {
	return []Importance{
		ImportanceCritical,
		ImportanceHigh,
		ImportanceMedium,
		ImportanceLow,
	}
}

// IsValid checks if the importance is valid
func (i Importance) IsValid() bool {
	switch i {
	case ImportanceLow,
		ImportanceMedium,
		ImportanceHigh,
		ImportanceCritical:
		return true
	default:
		return false
	}
}

// Normalize returns the importance, treating empty as ImportanceMedium.
func (i Importance) Normalize() Importance {
	if i == "" {
		return ImportanceMedium
	}
	return i
}

// String returns the string representation of the importance
func (i Importance) String() string {
	return string(i)
}

// Label returns the display label used by report serializers
func (i Importance) Label() string {
	switch i {
	case ImportanceCritical:
		return "Critical"
	case ImportanceHigh:
		return "High"
	case ImportanceMedium:
		return "Medium"
	case ImportanceLow:
		return "Low"
	default:
		return string(i)
	}
}

// ParseImportance parses a string into an Importance
func ParseImportance(s string) (Importance, error) {
	i := Importance(s)
	if !i.IsValid() {
		return "", fmt.Errorf("invalid importance: %s", s)
	}
	return i, nil
}
