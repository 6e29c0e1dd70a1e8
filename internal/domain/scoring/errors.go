package scoring

import "errors"

// Sentinel errors for scoring configuration.
var (
	ErrUnknownStrategy = errors.New("unknown quality strategy")
)
