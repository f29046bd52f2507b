package llm

import "errors"

var (
	// ErrUnavailable indicates the reasoning service is unreachable.
	ErrUnavailable = errors.New("reasoning service unavailable")

	// ErrTimeout indicates the reasoning request exceeded the configured timeout.
	ErrTimeout = errors.New("reasoning request timed out")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")
)
