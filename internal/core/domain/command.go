package domain

import "io"

// Command is an external program invocation with an explicit environment.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is applied over the allow-listed parent variables (PATH, HOME, ...).
	Env []string
	// Stdin is optional input, e.g. license answers.
	Stdin io.Reader
}

// String renders the command line for diagnostics.
func (c Command) String() string {
	s := c.Name
	for _, a := range c.Args {
		s += " " + a
	}
	return s
}
