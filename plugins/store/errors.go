package store

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid store config")
	ErrUnknownPlugin      = errors.New("unknown store plugin")
	ErrNotConfigured      = errors.New("store is not configured")
	ErrAccessDenied       = errors.New("store access denied")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrServiceUnavailable = errors.New("store service unavailable")
	ErrOperationTimeout   = errors.New("store operation timed out")
	ErrOperationCanceled  = errors.New("store operation canceled")
)
