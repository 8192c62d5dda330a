/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"errors"
	"fmt"

	orberrors "github.com/trustbloc/vp-verifier/pkg/errors"
)

var (
	// ErrMissingPolicy indicates that no presentation definition was supplied
	// for the submission.
	ErrMissingPolicy = errors.New("presentation definition not found")

	// ErrMalformedSubmission indicates that the submission lacks a required
	// top-level section.
	ErrMalformedSubmission = errors.New("malformed verification submission")

	// ErrCredentialsRevoked indicates that at least one of the submitted
	// credentials is revoked.
	ErrCredentialsRevoked = errors.New("submitted credentials are revoked")
)

// Error is a fatal verification error carrying a short title and a
// human-readable explanation. It wraps one of the sentinel errors above so
// callers can classify it with errors.Is.
type Error struct {
	Title  string
	Detail string

	kind error
}

func newError(kind error, title, detail string) *Error {
	return &Error{
		Title:  title,
		Detail: detail,
		kind:   kind,
	}
}

// newBadRequestError additionally marks the error as a 'bad request' so that
// callers may classify it as non-retryable client input.
func newBadRequestError(kind error, title, detail string) error {
	return orberrors.NewBadRequest(newError(kind, title, detail))
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.kind
}
