package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrStoreClosed = errors.New("store closed")
	ErrCorrupt     = errors.New("stored data is corrupt")
	ErrOpen        = errors.New("open store")
)
