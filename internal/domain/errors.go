package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors.
var (
	ErrEntityNotFound    = errors.New("entity not found")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyContent      = errors.New("content cannot be empty")
	ErrEmptyMessage      = errors.New("message cannot be empty")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidSourceType = errors.New("invalid source type (want whatsapp, email or note)")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrNoContext         = errors.New("at least one context entry is required")
	ErrConfigExists      = errors.New("config file already exists")
)

// Operation failures surfaced by a collection.
// Match them with errors.Is; the concrete error is an *OpError.
var (
	ErrFetch  = errors.New("fetch failed")
	ErrCreate = errors.New("create failed")
	ErrUpdate = errors.New("update failed")
	ErrDelete = errors.New("delete failed")
)

// Op names a collection operation.
type Op string

const (
	OpFetch  Op = "fetch"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// sentinel returns the taxonomy error for the operation.
func (o Op) sentinel() error {
	switch o {
	case OpFetch:
		return ErrFetch
	case OpCreate:
		return ErrCreate
	case OpUpdate:
		return ErrUpdate
	case OpDelete:
		return ErrDelete
	default:
		return nil
	}
}

// OpError reports a failed remote operation on a collection.
// Fields are ordered to minimize memory padding.
type OpError struct {
	Err     error      // Underlying cause (transport or *RemoteError)
	Op      Op         // Failed operation
	Kind    EntityKind // Entity type of the collection
	ID      string     // Target ID for update/delete (empty otherwise)
	Payload []byte     // Server-provided error body, when available
	Status  int        // HTTP status, 0 when the request never got a response
}

// NewOpError wraps err as a failure of op on kind.
// Status and Payload are taken from a wrapped *RemoteError when present.
func NewOpError(op Op, kind EntityKind, id string, err error) *OpError {
	e := &OpError{Op: op, Kind: kind, ID: id, Err: err}
	var re *RemoteError
	if errors.As(err, &re) {
		e.Status = re.Status
		e.Payload = re.Body
	}
	return e
}

func (e *OpError) Error() string {
	target := e.Kind.Plural()
	if e.ID != "" {
		target = fmt.Sprintf("%s %s", e.Kind, e.ID)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, target, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *OpError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Op.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// RemoteError is a non-success HTTP response from the backend.
type RemoteError struct {
	Method string
	Path   string
	Body   []byte
	Status int
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	if len(e.Body) > 0 {
		msg += ": " + truncateBody(e.Body, 200)
	}
	return msg
}

// NotFound returns true if the backend answered 404.
func (e *RemoteError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

func truncateBody(b []byte, limit int) string {
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}
