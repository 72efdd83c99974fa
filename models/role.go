// Package models defines data structures used across the application.
// File: models/role.go
package models

import "strings"

// ----------------------- role model -----------------------

// RoleKind identifies the broad class of a user's role.
type RoleKind int

const (
	// RoleStudent is the default role for anyone who logs in.
	RoleStudent RoleKind = iota
	// RoleCoordinator is bound to exactly one recruitment domain.
	RoleCoordinator
	// RoleSuperAdmin controls freeze/publish and cross-domain reporting.
	RoleSuperAdmin
)

// coordinatorDomains maps each coordinator role string to the slug of the
// one domain that coordinator manages.
var coordinatorDomains = map[string]string{
	"CO_TECH":        "tech",
	"CO_LOGS":        "logistics",
	"CO_SNI":         "sni",
	"CO_SPONSORSHIP": "sponsorship",
	"CO_PRC":         "prc",
	"CO_MEDIA":       "media",
	"CO_INHOUSE":     "inhouse",
	"CO_DISCO":       "disco",
	"CO_DESIGN":      "design",
	"CO_FINANCE":     "finance",
	"CO_OPS":         "operations",
	"CO_CUL":         "cultural",
	"CO_HOSPITALITY": "hospitality",
	"CO_FYI":         "fyi",
}

// Role is the parsed form of the persisted role string. Coordinators carry
// the slug of their domain so callers never have to string-match role names.
type Role struct {
	raw        string
	Kind       RoleKind
	DomainSlug string // set only for coordinators
}

const (
	roleStudent    = "student"
	roleSuperAdmin = "superadmin"
	coPrefix       = "CO_"
)

// ParseRole turns a persisted role string into a Role. Unknown values,
// including CO_ roles with no domain binding, fall back to a student role
// so a bad row can never grant privileges.
func ParseRole(s string) Role {
	switch {
	case s == roleSuperAdmin:
		return Role{raw: s, Kind: RoleSuperAdmin}
	case strings.HasPrefix(s, coPrefix):
		slug, ok := coordinatorDomains[s]
		if !ok {
			return Role{raw: roleStudent, Kind: RoleStudent}
		}
		return Role{raw: s, Kind: RoleCoordinator, DomainSlug: slug}
	case s == roleStudent:
		return Role{raw: s, Kind: RoleStudent}
	default:
		return Role{raw: roleStudent, Kind: RoleStudent}
	}
}

// StudentRole returns the default role assigned on first login.
func StudentRole() Role { return Role{raw: roleStudent, Kind: RoleStudent} }

// SuperAdminRole returns the global admin role.
func SuperAdminRole() Role { return Role{raw: roleSuperAdmin, Kind: RoleSuperAdmin} }

// String returns the persisted role string.
func (r Role) String() string {
	if r.raw == "" {
		return roleStudent
	}
	return r.raw
}

// IsCoordinator reports whether the role is bound to a domain.
func (r Role) IsCoordinator() bool { return r.Kind == RoleCoordinator }

// IsSuperAdmin reports whether the role is the global admin role.
func (r Role) IsSuperAdmin() bool { return r.Kind == RoleSuperAdmin }

// IsStudent reports whether the role carries no extra privileges.
func (r Role) IsStudent() bool { return r.Kind == RoleStudent }
