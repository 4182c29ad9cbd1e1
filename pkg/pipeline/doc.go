// Package pipeline wires the default action set to the container engine.
//
// The default pipeline registers two actions: the "publish" command and the
// "check: lint" check. Both run the pinned Python base image and return the
// interpreter version string; they differ only in description metadata.
package pipeline
