package repository

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the repository layer
var (
	ErrCaseNotFound = goerr.New("case not found")
)

// Context keys for error values
const (
	CaseIDKey = "case_id"
)
