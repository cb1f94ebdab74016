package domain

import "io"

// Command is one subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty inherits the current one.
	Dir string
	// Env entries in "KEY=VALUE" form are appended to the inherited environment.
	Env []string
	// Stdout and Stderr receive the process output. A nil writer falls back to
	// the corresponding stream of the parent process.
	Stdout io.Writer
	Stderr io.Writer
}
