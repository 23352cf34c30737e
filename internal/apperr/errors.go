package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AdapterKind classifies external-backend failures. Format errors are
// user-correctable and must not advance a lecture past its current stage;
// transient and shape errors are backend-side.
type AdapterKind string

const (
	KindFormat    AdapterKind = "format"
	KindTransient AdapterKind = "transient"
	KindShape     AdapterKind = "shape"
)

// ValidationError is user input out of contract. Maps to 400. Details carry
// enough of the rejected input for a client to self-correct.
type ValidationError struct {
	Message string
	Details map[string]interface{}
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) WithDetail(key string, value interface{}) *ValidationError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

// NotFoundError is a missing or unpublished resource. Maps to 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// AdapterError is a transcription/summarization/generation backend failure,
// including schema violations in generated output. Maps to 500.
type AdapterError struct {
	Kind    AdapterKind
	Op      string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *AdapterError) Unwrap() error { return e.Err }

func NewAdapter(kind AdapterKind, op, message string, err error) *AdapterError {
	return &AdapterError{Kind: kind, Op: op, Message: message, Err: err}
}

// IsFormat reports whether err is a user-correctable input-format failure.
func IsFormat(err error) bool {
	var ae *AdapterError
	return errors.As(err, &ae) && ae.Kind == KindFormat
}

// HTTPStatus maps an error from the taxonomy to its response status.
func HTTPStatus(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	if IsFormat(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Payload builds the response body for an error: {"error": ...} plus any
// validation detail fields.
func Payload(err error) map[string]interface{} {
	body := map[string]interface{}{"error": err.Error()}
	var ve *ValidationError
	if errors.As(err, &ve) {
		body["error"] = ve.Message
		for k, v := range ve.Details {
			body[k] = v
		}
	}
	return body
}
