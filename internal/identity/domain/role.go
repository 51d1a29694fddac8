package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Role is an authorization tag held by an Account.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleClient:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Roles is a set of roles kept in a stable, de-duplicated order.
type Roles []Role

// ParseRoles parses names and drops duplicates.
func ParseRoles(names []string) (Roles, error) {
	out := make(Roles, 0, len(names))
	for _, n := range names {
		r, err := ParseRole(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Has reports whether r is in the set.
func (rs Roles) Has(r Role) bool { return slices.Contains(rs, r) }

// Intersects reports whether any role in rs is also in allowed.
func (rs Roles) Intersects(allowed ...Role) bool {
	for _, r := range rs {
		if slices.Contains(allowed, r) {
			return true
		}
	}
	return false
}

// Strings returns the role names, e.g. for token claims.
func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
