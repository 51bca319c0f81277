package services

import "errors"

// Error kinds surfaced by the service layer. The HTTP boundary distinguishes
// them with errors.Is and maps each to a response status; the service never
// retries or recovers from them.
var (
	// ErrNotFound means a referenced project, task or comment target does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition means the requested status change is not in the
	// allowed-next set for the task's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidArgument means an unrecognized status or priority value was
	// presented. The mapping layer fails loudly rather than coercing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateTag is returned by the store when a batch tag insert hits
	// the unique name constraint. The upserter retries it as a lookup; it
	// never escapes the service.
	ErrDuplicateTag = errors.New("duplicate tag name")
)
