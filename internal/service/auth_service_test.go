package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/model"
	"gateway-identity/internal/pkg/config"
	"gateway-identity/internal/pkg/crypto"
	"gateway-identity/pkg/constants"
	pkgErrors "gateway-identity/pkg/responses"
)

func newTestAuthService(t *testing.T) (AuthService, *memUserRepo) {
	t.Helper()
	userRepo := newMemUserRepo()
	return NewAuthService(&config.GlobalConfig.Auth, userRepo), userRepo
}

func seedUser(t *testing.T, repo *memUserRepo, username, password string, status int8) *model.User {
	t.Helper()
	hash, err := crypto.HashSecret(password)
	require.NoError(t, err)
	user := &model.User{
		Username: username,
		Password: hash,
		Role:     constants.RoleUser,
	}
	user.Status = status
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestAuthService_Login(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedUser(t, repo, "alice", "pass123", constants.StatusEnabled)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "pass123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, 3600, resp.ExpiresIn)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, constants.RoleUser, resp.User.Role)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedUser(t, repo, "alice", "pass123", constants.StatusEnabled)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	// 用户不存在与密码错误返回同一错误，不泄露用户是否存在
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)
}

func TestAuthService_LoginDisabledUser(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedUser(t, repo, "bob", "pass123", constants.StatusDisabled)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "bob", Password: "pass123"})
	assert.ErrorIs(t, err, pkgErrors.ErrUserDisabled)
}

func TestAuthService_LoginEmptyHash(t *testing.T) {
	svc, repo := newTestAuthService(t)
	user := &model.User{Username: "nohash", Role: constants.RoleUser}
	user.Status = constants.StatusEnabled
	require.NoError(t, repo.Create(context.Background(), user))

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nohash", Password: ""})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)
}

func TestAuthService_VerifyToken(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedUser(t, repo, "alice", "pass123", constants.StatusEnabled)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "pass123"})
	require.NoError(t, err)

	info, err := svc.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, constants.RoleUser, info.Role)

	_, err = svc.VerifyToken(resp.AccessToken + "x")
	assert.Error(t, err)
}
