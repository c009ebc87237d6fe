package serrors

import "fmt"

// BaseError is a coded error carried across service boundaries. Code is a
// stable machine identifier, Message a human-readable default.
type BaseError struct {
	Code    string
	Message string
	Detail  string
}

func (e *BaseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func NewError(code, message, detail string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Detail:  detail,
	}
}
