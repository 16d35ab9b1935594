package multisite

import (
	"fmt"
	"strings"
)

// RefreshPolicy controls how scheduled aggregates are revalidated.
type RefreshPolicy string

const (
	RefreshKeep      RefreshPolicy = "keep"
	RefreshVerify    RefreshPolicy = "verify"
	RefreshReconcile RefreshPolicy = "reconcile"
)

// ParseRefreshPolicy parses a policy name. The empty string selects RefreshKeep.
func ParseRefreshPolicy(s string) (RefreshPolicy, error) {
	switch p := RefreshPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return RefreshKeep, nil
	case RefreshKeep, RefreshVerify, RefreshReconcile:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRefreshPolicy, s)
	}
}

func (p RefreshPolicy) String() string { return string(p) }
