package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "admingeo/pkg/domain-errors"
)

func TestSignAndValidateRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.Sign(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	token, err := svc.Sign(7)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).Sign(7)
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateGarbageToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not-a-jwt")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestAdapterResolvesUserID(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	adapter := NewServiceAdapter(svc)

	token, err := svc.Sign(99)
	require.NoError(t, err)

	claims, err := adapter.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(99), claims.UserID)
}
