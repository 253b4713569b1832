// Package logging builds the logr.Logger shared by the store, the task
// actions and the remote backends.
package logging

import (
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// Prefix is prepended to every log line.
const Prefix = "goaltrack: "

// New returns a logger writing to w. Error entries are always written;
// V(1) entries only when debug is set.
func New(w io.Writer, debug bool) logr.Logger {
	if debug {
		stdr.SetVerbosity(1)
	} else {
		stdr.SetVerbosity(0)
	}
	return stdr.New(log.New(w, Prefix, 0))
}
