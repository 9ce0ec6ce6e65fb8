package services

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies service errors so the HTTP layer can map them to statuses
// without inspecting error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindPersistence
	KindUpstream
	KindUnauthorized
)

// Error is the service-layer error type. Detail is safe to return to clients;
// Err carries the internal cause for logs.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnknown
}

func validationError(detail string) error {
	return &Error{Kind: KindValidation, Detail: detail}
}

func notFoundError(detail string) error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func conflictError(detail string) error {
	return &Error{Kind: KindConflict, Detail: detail}
}

func persistenceError(detail string, err error) error {
	return &Error{Kind: KindPersistence, Detail: detail, Err: err}
}

func upstreamError(detail string, err error) error {
	return &Error{Kind: KindUpstream, Detail: detail, Err: err}
}

func unauthorizedError(detail string) error {
	return &Error{Kind: KindUnauthorized, Detail: detail}
}
