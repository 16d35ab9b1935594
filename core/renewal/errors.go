package renewal

import "errors"

var (
	ErrNotFound       = errors.New("renewal not found")
	ErrInvalidRenewal = errors.New("invalid renewal")
)
