package validation

import "errors"

var (
	ErrNoWebRoot     = errors.New("target has no file system web root")
	ErrUnknownPlugin = errors.New("unknown validation plugin")
	ErrNotConfigured = errors.New("validation is not configured")
	ErrInvalidConfig = errors.New("invalid validation config")
)
