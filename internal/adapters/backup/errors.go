package backup

import "errors"

// Sentinel kinds for backup errors.
var (
	ErrInvalidBackup      = errors.New("invalid backup")
	ErrUnsupportedVersion = errors.New("unsupported backup version")
	ErrUnknownStrategy    = errors.New("unknown import strategy")
)
