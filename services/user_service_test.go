package services

import (
	"strings"
	"testing"

	"hotel-desk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPassword(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	u, err := svc.VerifyPassword(bg, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdministrator, u.Role)

	_, err = svc.VerifyPassword(bg, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.VerifyPassword(bg, "ghost", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserUpdate_KeepsPasswordHash(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	before, err := svc.GetByUsername(bg, "reception")
	require.NoError(t, err)

	updated, err := svc.Update(bg, before.ID, &models.User{
		Username:     "frontdesk",
		FullName:     "Front Desk Team",
		Role:         models.RoleReceptionist,
		PasswordHash: "overwritten?",
	})
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", updated.Username)
	assert.Equal(t, before.PasswordHash, updated.PasswordHash)

	_, err = svc.VerifyPassword(bg, "frontdesk", "reception123")
	assert.NoError(t, err)
}

func TestUserUpdatePassword(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	require.NoError(t, svc.UpdatePassword(bg, 2, "n3w-secret"))

	_, err := svc.VerifyPassword(bg, "reception", "reception123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.VerifyPassword(bg, "reception", "n3w-secret")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.UpdatePassword(bg, 2, "123"), ErrValidation)
	err = svc.UpdatePassword(bg, 2, strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, Reason(err), "72 bytes")
	assert.ErrorIs(t, svc.UpdatePassword(bg, 404, "long-enough"), ErrNotFound)
}

func TestUserCreateAndDelete(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	u := &models.User{Username: "night", FullName: "Night Shift", Role: models.RoleReceptionist}
	require.NoError(t, svc.Create(bg, u, "moonlight"))
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "moonlight", u.PasswordHash)

	err := svc.Create(bg, &models.User{Username: "night", Role: models.RoleReceptionist}, "moonlight")
	assert.ErrorIs(t, err, ErrConflict)

	err = svc.Create(bg, &models.User{Username: "boss", Role: "Owner"}, "moonlight")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.Delete(bg, u.ID))
	_, err = svc.GetByID(bg, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	users, err := svc.List(bg)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
