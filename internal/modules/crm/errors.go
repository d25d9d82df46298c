package crm

import "errors"

// ErrLeadLocked guards confirmed leads, which are immutable except through
// the order converter.
var ErrLeadLocked = errors.New("confirmed leads cannot be edited")
