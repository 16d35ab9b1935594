package multisite

import "errors"

var ErrUnknownRefreshPolicy = errors.New("unknown refresh policy")
