package catalog

import "errors"

var (
	ErrInventoryUnavailable = errors.New("site inventory unavailable")
	ErrInvalidInventory     = errors.New("invalid site inventory")
)
