package sqlite

import "errors"

var (
	ErrFailedToOpenDB  = errors.New("failed to open sqlite database")
	ErrMigrationFailed = errors.New("failed to apply sqlite migrations")
)
