package viewer

import (
	"errors"
	"fmt"
)

// ErrNoFileSelected is reported when Display is called before a file
// was selected.
var ErrNoFileSelected = errors.New("no file selected")

// DecodeError is reported when the selected content could not be read
// as a model.
type DecodeError struct {
	File string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error loading %s: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
