package resolve

import "fmt"

// UsageError reports a command line that does not match the declared flags:
// an unknown flag, a value the flag type rejects, a value outside the
// allowed set, or a positional argument.
type UsageError struct {
	Err error
	// Usage is the full flag listing.
	Usage string
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ValueError reports a config file value that its flag cannot accept.
type ValueError struct {
	Group string
	Flag  string
	Value any
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("config file value %v for %s.%s: %v", e.Value, e.Group, e.Flag, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }
