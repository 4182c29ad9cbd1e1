package engine

import "errors"

// Common errors returned by the runner
var (
	// ErrExecFailed indicates the engine reported a failed execution
	ErrExecFailed = errors.New("command execution failed")

	// ErrInvalidOptions indicates missing or malformed run options
	ErrInvalidOptions = errors.New("invalid run options")

	// ErrNoClient indicates the Dagger client is not initialized
	ErrNoClient = errors.New("dagger client not initialized")
)

// IsExecFailed returns true if the error is ErrExecFailed
func IsExecFailed(err error) bool {
	return errors.Is(err, ErrExecFailed)
}
