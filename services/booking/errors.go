package booking

import (
	"errors"
	"fmt"
)

// WorkflowErrorCode classifies a failed transition.
type WorkflowErrorCode string

const (
	CodeNotFound          WorkflowErrorCode = "notFound"
	CodeForbidden         WorkflowErrorCode = "forbidden"
	CodeInvalidStatus     WorkflowErrorCode = "invalidStatus"
	CodeInvalidTransition WorkflowErrorCode = "invalidTransition"
	CodeConflict          WorkflowErrorCode = "conflict"
	CodeDownstream        WorkflowErrorCode = "downstreamFailure"
)

// WorkflowError is a typed failure returned by the booking workflow.
type WorkflowError struct {
	Code    WorkflowErrorCode
	Message string
	Err     error
}

func (e *WorkflowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// NewWorkflowError builds a WorkflowError with an optional cause.
func NewWorkflowError(code WorkflowErrorCode, message string, cause error) error {
	return &WorkflowError{Code: code, Message: message, Err: cause}
}

// ErrCode extracts the workflow error code from err, or empty if err is not
// a WorkflowError.
func ErrCode(err error) WorkflowErrorCode {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Code
	}
	return ""
}
