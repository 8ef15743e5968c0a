// Package common defines shared constants and errors used across the
// SessionKeeper client layers. Callers should use errors.Is / errors.As to
// match these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors (malformed token, missing claims).
	ErrInvalidToken = errors.New("invalid token")
)

// Kind classifies failures that can reach a credential flow boundary.
type Kind int

const (
	// KindTransport covers unreachable servers, timeouts and non-2xx replies.
	KindTransport Kind = iota + 1
	// KindValidation is a server-side 422 with structured field errors.
	KindValidation
	// KindStorage is an unavailable or failing token storage medium.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// FieldError is a single entry of a structured validation reply.
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Error is the tagged failure produced by the gateway and the token store.
//
// Detail holds the server supplied (or storage) explanation suitable for
// display; Status is the HTTP status when one was received.
type Error struct {
	Kind   Kind
	Status int
	Detail string
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a network level failure.
func NewTransportError(status int, detail string, err error) *Error {
	return &Error{Kind: KindTransport, Status: status, Detail: detail, Err: err}
}

// NewValidationError builds a KindValidation error out of field errors. The
// Detail is the joined field messages.
func NewValidationError(status int, fields []FieldError) *Error {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Msg != "" {
			msgs = append(msgs, f.Msg)
		}
	}
	return &Error{Kind: KindValidation, Status: status, Detail: strings.Join(msgs, "; "), Fields: fields}
}

// NewStorageError wraps a token storage failure.
func NewStorageError(op string, err error) *Error {
	return &Error{Kind: KindStorage, Detail: "token storage " + op + " failed", Err: err}
}

// DisplayMessage maps an error to a human readable string.
//
// Order: tagged *Error detail, then kind specific text, then err.Error(),
// then fallback.
func DisplayMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Detail != "" {
			return e.Detail
		}
		switch e.Kind {
		case KindTransport:
			if e.Err != nil {
				return e.Err.Error()
			}
			return "server unavailable"
		case KindValidation:
			return "invalid input"
		case KindStorage:
			return "storage unavailable"
		}
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
