package core

import (
	"errors"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown catch-all for untyped external failures
	ErrUnknown ErrorCode = 100000
	// ErrNetworkFailure transport failed before a response was produced
	ErrNetworkFailure ErrorCode = 100001
	// ErrContractFailure operation reverted or rejected on-chain
	ErrContractFailure ErrorCode = 100002
	// ErrSerializationFailure malformed contract response
	ErrSerializationFailure ErrorCode = 100003
	// ErrUnauthorized authorization rejected
	ErrUnauthorized ErrorCode = 100004
	// ErrNotFound entity not found
	ErrNotFound ErrorCode = 100005

	// ErrInvalidAmount amount must be positive
	ErrInvalidAmount ErrorCode = 100101
	// ErrPoolNotFound no contract id mapped for the pool
	ErrPoolNotFound ErrorCode = 100102
	// ErrOperationForbidden pool status rejects the operation
	ErrOperationForbidden ErrorCode = 100103
	// ErrPoolStatusUnknown status read failed, admission impossible
	ErrPoolStatusUnknown ErrorCode = 100104
	// ErrEmptyBatch submit called with no requests
	ErrEmptyBatch ErrorCode = 100105
	// ErrInvalidAddress malformed account or asset address
	ErrInvalidAddress ErrorCode = 100106
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// IsValidation true for the locally-detectable validation family.
func (e ErrorCode) IsValidation() bool {
	return e >= 100100 && e < 100200
}

// Error a typed failure carrying a code, a human message and the original
// cause. Raw transport or serialization errors never leave the sdk without
// being wrapped into one of these.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches against a bare ErrorCode target.
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && e.Code == code
}

// ErrorWith new typed error
func ErrorWith(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// WrapError wrap a collaborator failure under a code
func WrapError(code ErrorCode, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, cause: cause}
}

// CodeOf extract the code of err, ErrUnknown when untyped.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return ErrUnknown
}
