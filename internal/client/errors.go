package client

import (
	"errors"
	"fmt"
)

// Kind classifies why a request against the task API failed.
type Kind string

const (
	// KindTransport covers dial errors, timeouts and cancelled contexts.
	KindTransport Kind = "transport"
	// KindStatus is a response with a non-2xx status code.
	KindStatus Kind = "status"
	// KindEnvelope is an undecodable body, success:false, or a missing data field.
	KindEnvelope Kind = "envelope"
)

// Error describes a failed API call.
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a client error of the given kind.
func IsKind(err error, kind Kind) bool {
	var cErr *Error
	if errors.As(err, &cErr) {
		return cErr.Kind == kind
	}
	return false
}
