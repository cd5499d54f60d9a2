package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("ops", "viewer", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, "viewer", claims.Role)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("ops", "admin", "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other")
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("ops", "admin", "s3cret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "s3cret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_EmptySecret(t *testing.T) {
	_, err := GenerateJWT("ops", "admin", "", time.Hour)
	assert.Error(t, err)
}

func TestJWT_MissingSubject(t *testing.T) {
	token, err := GenerateJWT("", "admin", "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "s3cret")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidSubject)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, ExtractToken(r), tt.header)
	}
}
