// Package action defines the pipeline action model and an in-memory
// registry of action definitions.
//
// An action is a named, zero-argument unit of pipeline behavior: it names a
// base container image and a command to run in it. The registry owns its
// state and hands out copies, so callers can never mutate a registered
// definition from the outside.
package action
