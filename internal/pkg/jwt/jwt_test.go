package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gateway-identity/internal/pkg/config"
	"gateway-identity/pkg/constants"
)

func TestMain(m *testing.M) {
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{
				Secret:            "test-secret",
				AccessTokenExpire: 3600,
			},
		},
	}
	m.Run()
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken("alice", "alice@example.com", constants.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, constants.RoleAdmin, claims.Role)
	assert.Equal(t, constants.JWTTypeAccess, claims.Type)
}

func TestValidateTokenTampered(t *testing.T) {
	token, err := GenerateAccessToken("alice", "", constants.RoleUser)
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("alice", "", constants.RoleUser)
	require.NoError(t, err)

	config.GlobalConfig.Auth.JWT.Secret = "other-secret"
	defer func() { config.GlobalConfig.Auth.JWT.Secret = "test-secret" }()

	_, err = ValidateToken(token)
	assert.Error(t, err)
}
