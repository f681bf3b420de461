// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/errors.go
// Summary: Error taxonomy for registry and backend failures.

package texelwin

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry rejects zero or negative window dimensions. The
	// failed operation leaves the window (or registry) unchanged.
	ErrInvalidGeometry = errors.New("texelwin: invalid window geometry")

	// ErrUnknownWindow rejects operations on a destroyed or never-issued
	// window id.
	ErrUnknownWindow = errors.New("texelwin: unknown window id")

	// ErrModalCapture rejects focus changes while a modal window holds the
	// input.
	ErrModalCapture = errors.New("texelwin: input captured by modal window")
)

// BackendError wraps a failure of the terminal backend. It is fatal to the
// frame that triggered it; the caller of the run loop decides whether the
// process survives.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("texelwin: backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
