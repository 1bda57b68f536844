package bemtest

import (
	"errors"
	"fmt"
)

// ErrSessionDrained reports use of a session after Notify has resolved its chain.
// Sessions are single-use; enqueueing afterwards panics with this error.
var ErrSessionDrained = errors.New("bemtest: session already drained")

// ConfigurationError reports invalid harness setup: a reserved module identifier
// reused, a malformed source tree, or a missing technology binding. It is detected
// at setup or materialization time, before any technology code runs.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bemtest: configuration: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("bemtest: configuration: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// AssertionError reports an unmet expectation about the sandbox after an action.
type AssertionError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("bemtest: assertion failed for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}
