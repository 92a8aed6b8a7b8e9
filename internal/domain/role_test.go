package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in    string
		want  Role
		valid bool
	}{
		{"", RoleCustomer, true},
		{"Customer", RoleCustomer, true},
		{"Seller", RoleSeller, true},
		{"Admin", RoleAdmin, true},
		{"customer", "", false},
		{"ADMIN", "", false},
		{"Superuser", "", false},
	}

	for _, tc := range tests {
		got, ok := ParseRole(tc.in)
		assert.Equal(t, tc.valid, ok, "input %q", tc.in)
		if tc.valid {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}

func TestUpdateProductRequestEmpty(t *testing.T) {
	assert.True(t, UpdateProductRequest{}.Empty())

	price := 1.0
	assert.False(t, UpdateProductRequest{Price: &price}.Empty())
}
