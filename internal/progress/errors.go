package progress

import "fmt"

// StorageError reports a persistence failure. Appends retry once before
// returning it; a StorageError from any operation means the caller must
// treat the surrounding turn as failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("progress store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
