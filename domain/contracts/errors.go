package contracts

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a gateway failure by the flow it interrupts.
type ErrorKind string

const (
	// ResolutionFailure covers site/drive identifier lookup failures.
	ResolutionFailure ErrorKind = "resolution"
	// ListingFailure covers per-source listing fetch failures.
	ListingFailure ErrorKind = "listing"
	// FacetFailure covers per-facet detail fetch failures. Isolated to the
	// facet that issued the call; siblings keep their own state.
	FacetFailure ErrorKind = "facet"
	// MutationFailure covers upload/patch/assign/copy/restore failures.
	// Always user-visible.
	MutationFailure ErrorKind = "mutation"
	// NotFound means the addressed item vanished or is inaccessible in the
	// requested drive. Triggers the copy-to-personal-drive fallback.
	NotFound ErrorKind = "not_found"
)

// GatewayError wraps a failure from the remote document-graph boundary with
// the operation that issued it and its classification.
type GatewayError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError builds a classified gateway error.
func NewGatewayError(op string, kind ErrorKind, err error) *GatewayError {
	return &GatewayError{Op: op, Kind: kind, Err: err}
}

// IsNotFound reports whether err is a gateway error classified NotFound.
func IsNotFound(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Kind == NotFound
}

// ErrorKindOf extracts the kind from a gateway error chain, or empty string.
func ErrorKindOf(err error) ErrorKind {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}
