package action

import (
	"fmt"
	"strings"
)

// Kind classifies what an action is for
type Kind string

const (
	// KindCommand is an imperative pipeline step, like a publish
	KindCommand Kind = "command"

	// KindCheck is a validation step; checks are registered under a
	// "check: " prefixed name
	KindCheck Kind = "check"
)

// CheckPrefix is prepended to the registered name of every check
const CheckPrefix = "check: "

// Definition describes a pipeline action
type Definition struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Description string   `json:"description,omitempty"`
	BaseImage   string   `json:"base_image"`
	Command     []string `json:"command"`
}

// RegisteredName returns the name the definition is stored under.
// Checks carry the check prefix, commands use their plain name.
func (d *Definition) RegisteredName() string {
	if d.Kind == KindCheck && !strings.HasPrefix(d.Name, CheckPrefix) {
		return CheckPrefix + d.Name
	}
	return d.Name
}

// Validate checks that the definition is complete enough to run
func (d *Definition) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: definition is nil", ErrInvalidDefinition)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	switch d.Kind {
	case KindCommand, KindCheck:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidDefinition, d.Kind)
	}
	if d.BaseImage == "" {
		return fmt.Errorf("%w: base image is required", ErrInvalidDefinition)
	}
	if len(d.Command) == 0 {
		return fmt.Errorf("%w: command is required", ErrInvalidDefinition)
	}
	return nil
}
