package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{
			name:    "full name wins",
			profile: Profile{FullName: "Grace Hopper", Email: "grace.hopper@example.com"},
			want:    "Grace Hopper",
		},
		{
			name:    "email local part",
			profile: Profile{Email: "grace.hopper@example.com"},
			want:    "grace.hopper",
		},
		{
			name:    "email without at sign",
			profile: Profile{Email: "grace"},
			want:    "grace",
		},
		{
			name:    "nothing known",
			profile: Profile{ID: "u1"},
			want:    AnonymousName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName())
		})
	}
}

func TestResolved(t *testing.T) {
	assert.True(t, Profile{ID: "u1"}.Resolved())
	assert.False(t, Profile{FullName: "Grace Hopper"}.Resolved())
}
