package response

import (
	"errors"
)

type Error struct {
	Code int
	Err  error
	Data map[string]interface{}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{Code: code, Err: errors.New(err)}
}

// NewErrorWithData attaches request-specific debug values to an error while
// keeping Is() equality with the bare sentinel of the same code and message.
func NewErrorWithData(code int, err string, data map[string]interface{}) error {
	return &Error{Code: code, Err: errors.New(err), Data: data}
}
