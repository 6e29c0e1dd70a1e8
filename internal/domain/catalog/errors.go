package catalog

import "errors"

// Sentinel errors for catalog validation.
var (
	ErrInvalidCatalog     = errors.New("invalid catalog")
	ErrDuplicateType      = errors.New("duplicate task type")
	ErrDuplicateCriterion = errors.New("duplicate criterion")
)
