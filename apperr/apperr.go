package apperr

import "errors"

// Error is the typed error every core operation raises. The boundary layer
// maps Status and Code verbatim onto the HTTP response; anything that is not
// an *Error is coerced to Unknown before it leaves the process.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New builds a typed error with an explicit status and code.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// From extracts the typed error, coercing unrecognized errors to Unknown.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unknown()
}
