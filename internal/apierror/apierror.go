// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error. Each kind maps to exactly one HTTP status.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindDuplicate
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationFailed"
	case KindNotFound:
		return "NotFound"
	case KindDuplicate:
		return "DuplicateResource"
	case KindStorage:
		return "StorageFailure"
	default:
		return "Unknown"
	}
}

// Issue is a single field-level validation problem.
type Issue struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Received any    `json:"received,omitempty"`
}

// Detail describes the conflicting value of a DuplicateResource error.
type Detail struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Resource string `json:"resource"`
}

// Error is the tagged error returned by the service layer. Only the fields
// relevant to Kind are populated.
type Error struct {
	Kind    Kind
	Message string

	Issues []Issue // KindValidation

	Field    string // KindDuplicate
	Value    string
	Resource string

	Op  string // KindStorage
	Err error
}

func (e *Error) Error() string {
	if e.Kind == KindStorage && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a ValidationFailed error carrying the ordered issue list.
func Validation(msg string, issues []Issue) *Error {
	return &Error{Kind: KindValidation, Message: msg, Issues: issues}
}

// FieldIssue is a shortcut for a ValidationFailed error on a single field.
func FieldIssue(field, msg string, received any) *Error {
	return Validation(msg, []Issue{{Field: field, Message: msg, Received: received}})
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Duplicate(msg, field, value, resource string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg, Field: field, Value: value, Resource: resource}
}

// Storage wraps an unexpected persistence failure for operation op.
func Storage(op string, err error) *Error {
	return &Error{
		Kind:    KindStorage,
		Message: "Error en la operación de base de datos: " + op,
		Op:      op,
		Err:     err,
	}
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// Envelope is the JSON shape of every error response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []Issue  `json:"errors,omitempty"`
	Details []Detail `json:"details,omitempty"`
}

const (
	msgInterno  = "Error interno del servidor"
	msgBaseDato = "Error de base de datos"
)

// Render maps any error to its HTTP status and response body. In production,
// storage failures are reduced to a generic message.
func Render(err error, production bool) (int, Envelope) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, Envelope{Message: msgInterno}
	}

	body := Envelope{Message: e.Message}
	switch e.Kind {
	case KindValidation:
		body.Errors = e.Issues
		return http.StatusBadRequest, body
	case KindNotFound:
		return http.StatusNotFound, body
	case KindDuplicate:
		body.Details = []Detail{{Field: e.Field, Value: e.Value, Resource: e.Resource}}
		return http.StatusConflict, body
	case KindStorage:
		if production {
			body.Message = msgBaseDato
		}
		return http.StatusInternalServerError, body
	default:
		return http.StatusInternalServerError, Envelope{Message: msgInterno}
	}
}
