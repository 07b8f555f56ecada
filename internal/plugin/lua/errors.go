package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoRemapFunction is returned when a remap script does not define
	// a global remap function.
	ErrNoRemapFunction = errors.New("script does not define remap(ev)")

	// ErrBadReturn is returned when remap returns something other than a
	// string or nil.
	ErrBadReturn = errors.New("remap must return a string or nil")
)
