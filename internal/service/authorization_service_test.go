package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gateway-identity/internal/model"
	"gateway-identity/pkg/constants"
	pkgErrors "gateway-identity/pkg/responses"
)

func newTestAuthorizationService(t *testing.T) (AuthorizationService, *memUserRepo) {
	t.Helper()
	userRepo := newMemUserRepo()
	return NewAuthorizationService(userRepo), userRepo
}

func TestAuthorizationService_HasRole(t *testing.T) {
	svc, repo := newTestAuthorizationService(t)
	admin := &model.User{Username: "admin", Role: constants.RoleAdmin}
	admin.Status = constants.StatusEnabled
	require.NoError(t, repo.Create(context.Background(), admin))

	ok, err := svc.HasRole(context.Background(), "admin", []string{constants.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasRole(context.Background(), "admin", []string{constants.RoleUser})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorizationService_EmptyRequired(t *testing.T) {
	svc, repo := newTestAuthorizationService(t)
	admin := &model.User{Username: "admin", Role: constants.RoleAdmin}
	require.NoError(t, repo.Create(context.Background(), admin))

	// 空角色集合不放行任何人
	ok, err := svc.HasRole(context.Background(), "admin", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorizationService_UnknownUser(t *testing.T) {
	svc, _ := newTestAuthorizationService(t)

	_, err := svc.HasRole(context.Background(), "ghost", []string{constants.RoleAdmin})
	assert.ErrorIs(t, err, pkgErrors.ErrUserNotFound)
}

func TestAuthorizationService_RoleChangeTakesEffect(t *testing.T) {
	svc, repo := newTestAuthorizationService(t)
	user := &model.User{Username: "carol", Role: constants.RoleAdmin}
	require.NoError(t, repo.Create(context.Background(), user))

	ok, err := svc.HasRole(context.Background(), "carol", []string{constants.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, ok)

	// 撤权后下一次判断即生效
	user.Role = constants.RoleUser
	require.NoError(t, repo.Update(context.Background(), user))

	ok, err = svc.HasRole(context.Background(), "carol", []string{constants.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, ok)
}
