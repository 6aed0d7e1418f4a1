package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefork/backend/internal/service"
	"github.com/platefork/backend/internal/testdb"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testdb.Open(t)
	svc := service.NewAuthService(db, "test-secret")

	user, token, err := svc.Register("carol", "Carol", "carol@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "carol", claims.Username)

	loggedIn, token2, err := svc.Login("carol@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token2)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := testdb.Open(t)
	svc := service.NewAuthService(db, "test-secret")

	_, _, err := svc.Register("carol", "Carol", "carol@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Register("other", "Other", "carol@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrUserExists)

	_, _, err = svc.Register("carol", "Other", "other@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := testdb.Open(t)
	svc := service.NewAuthService(db, "test-secret")

	_, _, err := svc.Register("carol", "Carol", "carol@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login("carol@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	db := testdb.Open(t)
	svc := service.NewAuthService(db, "test-secret")
	other := service.NewAuthService(db, "different-secret")

	user, _, err := svc.Register("carol", "Carol", "carol@example.com", "hunter22")
	require.NoError(t, err)

	foreign, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(foreign)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
