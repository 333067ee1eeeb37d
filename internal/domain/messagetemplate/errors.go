package messagetemplate

import "fmt"

// FetchError reports that the template store could not be reached or
// answered with an error.
type FetchError struct {
	Op  string
	Err error
}

func NewFetchError(op string, err error) *FetchError {
	return &FetchError{Op: op, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("message template store: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
