package model

import "errors"

var (
	// ErrNotReady is returned when an embed call arrives before the
	// handle has been initialized.
	ErrNotReady = errors.New("embedding model not loaded")
	// ErrStopped is returned for embed calls after Teardown.
	ErrStopped = errors.New("embedding model stopped")
	// ErrBackend wraps failures raised by the embedding backend.
	ErrBackend = errors.New("embedding backend error")
)
