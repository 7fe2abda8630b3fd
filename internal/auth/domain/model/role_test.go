package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		input   string
		role    Role
		allowed bool
	}{
		{"ADMIN", RoleAdmin, true},
		{"ANALYST", RoleAnalyst, true},
		{"SUPPORT", RoleSupport, true},
		{"USER", Role("USER"), false},
		{"admin", Role("admin"), false}, // matching is exact
		{"", Role(""), false},
		{"SUPERADMIN", Role("SUPERADMIN"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			role := ParseRole(tc.input)
			assert.Equal(t, tc.role, role)
			assert.Equal(t, tc.allowed, role.Allowed())
			assert.Equal(t, tc.input, role.String())
		})
	}
}
