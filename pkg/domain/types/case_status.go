package types

import "fmt"

// CaseStatus represents the lifecycle status of a case
type CaseStatus string

const (
	CaseStatusActive   CaseStatus = "active"
	CaseStatusClosed   CaseStatus = "closed"
	CaseStatusArchived CaseStatus = "archived"
)

// AllCaseStatuses returns all valid case statuses
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusActive,
		CaseStatusClosed,
		CaseStatusArchived,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusActive,
		CaseStatusClosed,
		CaseStatusArchived:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as CaseStatusActive.
func (s CaseStatus) Normalize() CaseStatus {
	if s == "" {
		return CaseStatusActive
	}
	return s
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}
