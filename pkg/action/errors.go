package action

import "errors"

// Common errors returned by the registry
var (
	// ErrNotFound indicates the requested action doesn't exist
	ErrNotFound = errors.New("action not found")

	// ErrExists indicates an action with the same name is already registered
	ErrExists = errors.New("action already registered")

	// ErrInvalidDefinition indicates an incomplete or malformed definition
	ErrInvalidDefinition = errors.New("invalid action definition")
)

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalid returns true if the error is ErrInvalidDefinition
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidDefinition)
}
