package target

import "errors"

var (
	ErrNoHosts       = errors.New("target has no host names")
	ErrTooManyNames  = errors.New("target exceeds the maximum number of host names")
	ErrInvalidSiteID = errors.New("invalid site id")
)
