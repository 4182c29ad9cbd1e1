// Package engine runs pipeline actions in containers via the Dagger engine.
//
// The engine owns all real work: image resolution, scheduling, execution,
// caching. This package only chains the builder calls (base image by tag,
// exec, output capture) and returns structured results. Engine failures
// propagate to the caller wrapped but unclassified.
package engine
