package layout

import "fmt"

// InvalidGraphError is the single failure mode of the layout engine. It is
// raised synchronously, before any placement or routing work, for exactly
// three conditions: an empty node set, an empty branch set, or a branch
// endpoint referencing a node that does not exist. Every other internal
// situation degrades gracefully instead of failing.
type InvalidGraphError struct {
	Reason string
	Cause  error
}

func (e *InvalidGraphError) Error() string {
	return fmt.Sprintf("invalid graph: %s", e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is chains, when present.
func (e *InvalidGraphError) Unwrap() error { return e.Cause }

func invalidGraph(reason string) error {
	return &InvalidGraphError{Reason: reason}
}
