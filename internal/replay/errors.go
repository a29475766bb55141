package replay

import "errors"

var (
	// ErrInsufficientData is returned when a sample is requested before the
	// buffer holds at least a full batch. Recoverable: push more and retry.
	ErrInsufficientData = errors.New("replay: not enough transitions buffered")

	// ErrIndexOutOfRange is returned when a read or priority update references
	// an invalid slot. Indicates a bookkeeping bug in the caller, never
	// swallowed internally.
	ErrIndexOutOfRange = errors.New("replay: index out of range")
)
