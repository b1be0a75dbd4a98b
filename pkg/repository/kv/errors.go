package kv

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the key-value layer
var (
	ErrKeyNotFound   = goerr.New("key not found")
	ErrQuotaExceeded = goerr.New("storage quota exceeded")
)

// Context keys for error values
const (
	KeyKey  = "key"
	SizeKey = "size"
)
