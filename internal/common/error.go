// Package common defines sentinel errors shared across the cache, remote
// and sync layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Policy errors (attempted cross-owner write without admin role).
	ErrPermissionDenied = errors.New("permission denied")

	// Identity errors (no authenticated user available).
	ErrSignedOut = errors.New("signed out")
)
