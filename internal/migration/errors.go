package migration

import "fmt"

// WriteError wraps a destination write failure. Write failures are fatal for
// the run: the surrounding transaction rolls back and nothing is retried at
// this layer.
type WriteError struct {
	Table    string
	SourceID string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write to %s failed for source row %s: %v", e.Table, e.SourceID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
