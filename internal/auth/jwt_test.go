package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-which-is-long-enough")

func TestAccessTokenRoundTrip(t *testing.T) {
	token, expiry, err := NewAccessToken(testSecret, 42, "MEMBER", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)

	claims, err := ParseAccessToken(testSecret, token)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "MEMBER", claims.Role)
}

func TestParseAccessToken(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "rejects garbage",
			token: func(t *testing.T) string {
				return "not-a-token"
			},
		},
		{
			name: "rejects token signed with a different secret",
			token: func(t *testing.T) string {
				token, _, err := NewAccessToken([]byte("another-secret-entirely-here!!!!"), 1, "MEMBER", time.Hour)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "rejects expired token",
			token: func(t *testing.T) string {
				token, _, err := NewAccessToken(testSecret, 1, "MEMBER", -time.Minute)
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccessToken(testSecret, tt.token(t))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
