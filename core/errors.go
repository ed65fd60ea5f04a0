package core

import (
	"errors"
	"fmt"
)

// ErrMissingDate is returned when a log file name carries no YYYY-MM-DD date.
// It is fatal for a whole archive run.
var ErrMissingDate = errors.New("file name does not contain a YYYY-MM-DD date")

// FileError records a failed open, read or write of a transcript or artifact.
type FileError struct {
	Op   string // "read", "write", "stat", ...
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
