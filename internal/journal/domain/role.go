package domain

import (
	"strings"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"
)

// Role represents a member's role within a container.
type Role int

const (
	// RoleUnspecified represents an invalid role value.
	RoleUnspecified Role = iota
	// RoleAdmin grants container administration rights.
	RoleAdmin
	// RoleMember grants regular participation rights.
	RoleMember
)

// ErrInvalidRole indicates a missing or unknown role.
var ErrInvalidRole = apperrors.New(apperrors.CodeRoleInvalid, "role is invalid")

// RoleLabel returns the string label for a role.
func RoleLabel(role Role) string {
	switch role {
	case RoleAdmin:
		return "admin"
	case RoleMember:
		return "member"
	default:
		return ""
	}
}

// RoleFromLabel converts a role label to a Role value.
func RoleFromLabel(label string) Role {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "admin":
		return RoleAdmin
	case "member":
		return RoleMember
	default:
		return RoleUnspecified
	}
}
