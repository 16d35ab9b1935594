package plugin

import "errors"

var (
	ErrInvalidFactory   = errors.New("invalid plugin factory")
	ErrDuplicateFactory = errors.New("plugin factory already registered")
)
