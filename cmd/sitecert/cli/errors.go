package cli

import "errors"

var (
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrUnknownRenewalStore = errors.New("unknown renewal store")
	ErrNothingSelected     = errors.New("no sites selected")
	ErrInvalidOption       = errors.New("invalid option")
)
