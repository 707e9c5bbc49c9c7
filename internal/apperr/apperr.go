/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package apperr holds the error taxonomy shared by services and handlers.
// Services return these, the HTTP layer maps each kind onto a status code,
// so no service has to know about HTTP at all.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal     Kind = iota // Anything unexpected, maps to 500
	KindValidation               // Malformed input, maps to 400 with field-keyed details
	KindConflict                 // Uniqueness violated (duplicate review, email...), maps to 409
	KindNotFound                 // Target resource does not exist, maps to 404
	KindUnauthorized             // No valid identity supplied, maps to 401
	KindForbidden                // Identity is known but not allowed, maps to 403
)

// Error is an error with a kind and a single human readable detail message.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// Validation builds a 400 with a single detail message, for the cases where
// no specific input field is to blame (a wrong confirmation code, say).
func Validation(format string, v ...any) error {
	return &Error{Kind: KindValidation, Detail: fmt.Sprintf(format, v...)}
}

func NotFound(format string, v ...any) error {
	return &Error{Kind: KindNotFound, Detail: fmt.Sprintf(format, v...)}
}

func Conflict(format string, v ...any) error {
	return &Error{Kind: KindConflict, Detail: fmt.Sprintf(format, v...)}
}

func Unauthorized(format string, v ...any) error {
	return &Error{Kind: KindUnauthorized, Detail: fmt.Sprintf(format, v...)}
}

func Forbidden(format string, v ...any) error {
	return &Error{Kind: KindForbidden, Detail: fmt.Sprintf(format, v...)}
}

// Fields is a validation error keyed by the offending input field.
// It is its own type since it serializes differently (a map, not a detail string).
type Fields map[string][]string

func (f Fields) Error() string { return "validation failed" }

// Add appends a message for the given field.
func (f Fields) Add(field, message string) { f[field] = append(f[field], message) }

// Invalid builds a validation error for a single field.
func Invalid(field, message string) error {
	return Fields{field: {message}}
}

// KindOf extracts the kind out of any error.
// Plain errors (driver failures and such) classify as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var f Fields
	if errors.As(err, &f) {
		return KindValidation
	}
	return KindInternal
}
