package ingest

import "fmt"

// SourceReadError means the raw input could not be read. The batch is
// aborted before anything is normalized or stored.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read source %s: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// ConnectionError means no store session could be established.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s warehouse: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// MergeError means the store session failed after connecting. The
// transaction is rolled back so the store is left as it was.
type MergeError struct {
	// the state the loader was in when it failed
	State State
	Err   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge failed in state %s: %v", e.State, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}
