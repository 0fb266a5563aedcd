package status

import "errors"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// CodeOf extracts the status code carried by err. Errors that don't wrap an HTTPError
// are considered internal.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}

var (
	ErrNotFound          = NewError(NotFound, "not found")
	ErrNoTarget          = NewError(NotFound, "request line carries no target path")
	ErrUnsupportedKind   = NewError(NotImplemented, "content kind is not supported")
	ErrUnsupportedTarget = NewError(NotImplemented, "target is neither a directory nor a regular file")
)
