package datasource

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrFetchFailed matches any error returned because the remote listing or
	// comment thread service rejected a request.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrMalformedRecord matches records missing a field every row needs.
	ErrMalformedRecord = errors.New("malformed record")
)

type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrFetchFailed, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Cause() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

func fetchFailed(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &FetchError{Op: fmt.Sprintf(format, args...), Err: err}
}

func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedRecord, format, args...)
}
