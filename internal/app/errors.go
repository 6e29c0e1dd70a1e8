package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidEmployee  = errors.New("invalid employee")
	ErrInvalidTask      = errors.New("invalid task")
	ErrUnknownType      = errors.New("unknown task type")
	ErrNotStarted       = errors.New("service not started")
)
