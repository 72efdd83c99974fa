// file: models/role_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoleStudent(t *testing.T) {
	r := ParseRole("student")
	assert.True(t, r.IsStudent())
	assert.False(t, r.IsCoordinator())
	assert.False(t, r.IsSuperAdmin())
	assert.Equal(t, "student", r.String())
}

func TestParseRoleSuperAdmin(t *testing.T) {
	r := ParseRole("superadmin")
	assert.True(t, r.IsSuperAdmin())
	assert.Empty(t, r.DomainSlug)
	assert.Equal(t, "superadmin", r.String())
}

func TestParseRoleCoordinatorCarriesDomain(t *testing.T) {
	cases := map[string]string{
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
	for raw, slug := range cases {
		r := ParseRole(raw)
		assert.True(t, r.IsCoordinator(), raw)
		assert.Equal(t, slug, r.DomainSlug, raw)
		assert.Equal(t, raw, r.String())
	}
}

func TestParseRoleUnknownFallsBackToStudent(t *testing.T) {
	for _, raw := range []string{"", "admin", "CO_UNKNOWN", "Superadmin", "co_tech"} {
		r := ParseRole(raw)
		assert.True(t, r.IsStudent(), "%q must not grant privileges", raw)
		assert.Empty(t, r.DomainSlug)
		assert.Equal(t, "student", r.String())
	}
}

func TestZeroRoleStringIsStudent(t *testing.T) {
	var r Role
	assert.Equal(t, "student", r.String())
}
