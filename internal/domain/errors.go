package domain

import "errors"

// Shared error taxonomy for the workflow engine. Module packages add their
// own sentinels only for concerns that never cross a module boundary.
var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidRole          = errors.New("unknown role")
	ErrUnknownUser          = errors.New("user missing, inactive or not permitted")
	ErrAlreadyConfirmed     = errors.New("lead already confirmed")
	ErrTerminalState        = errors.New("status is terminal")
	ErrTasksIncomplete      = errors.New("project has incomplete tasks")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrInvalidProjectState  = errors.New("project does not accept tasks in its current status")
	ErrRoleMismatch         = errors.New("user role does not match task type")
	ErrReferentialIntegrity = errors.New("referenced record missing or still referenced")
	ErrConcurrentConflict   = errors.New("concurrent modification, retry")
)
