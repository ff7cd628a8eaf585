// Package common defines shared constants and sentinel errors used across
// the publisher host, the publish pipeline and the development receiver.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotFound is returned when no document was supplied or it does not
	// exist in the vault.
	ErrNotFound = errors.New("not found")

	// ErrIO covers local storage failures: read, mkdir and rename.
	ErrIO = errors.New("io error")

	// ErrUpload covers transport failures, timeouts and non-2xx replies.
	ErrUpload = errors.New("upload error")

	// ErrSettings is returned when settings cannot be persisted.
	ErrSettings = errors.New("settings error")

	// Receiver-side errors.
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidPayload = errors.New("invalid payload")
)
