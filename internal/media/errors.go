package media

import (
	"errors"
	"fmt"
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("file is empty")
)

// CapacityError rejects a whole batch that would push the gallery past
// its maximum size. Nothing from the batch is added.
type CapacityError struct {
	Max     int
	Current int
	Batch   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("maximum %d images allowed (have %d, adding %d)", e.Max, e.Current, e.Batch)
}

// FileError reports one rejected file out of a batch. Other files in the
// same batch are unaffected.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
