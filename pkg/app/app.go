// Package app defines common runtime contracts shared by the executable
// entrypoints (bridge client API, one-shot transfer, devwallet node).
package app

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}
