package session

import "errors"

// Session errors.
var (
	// ErrClosed indicates the session already reached a terminal
	// outcome; late producer calls are rejected with it.
	ErrClosed = errors.New("session closed")

	// ErrEmptyBatch indicates an AddBatch call with no items.
	ErrEmptyBatch = errors.New("empty batch")
)
