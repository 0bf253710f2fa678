package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gateway-identity/pkg/constants"
	"gateway-identity/pkg/responses"
)

// stubAuthzService 固定的用户名→角色映射
type stubAuthzService struct {
	roles map[string]string
}

func (s *stubAuthzService) HasRole(ctx context.Context, username string, required []string) (bool, error) {
	if len(required) == 0 {
		return false, nil
	}
	role, ok := s.roles[username]
	if !ok {
		return false, responses.ErrUserNotFound
	}
	for _, r := range required {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func newRolesRouter(authz *stubAuthzService, username string, roles ...string) *gin.Engine {
	r := gin.New()
	// 模拟认证中间件注入的用户名
	r.GET("/admin", func(c *gin.Context) {
		if username != "" {
			c.Set(constants.ContextKeyUsername, username)
		}
	}, RequireRoles(authz, roles...), func(c *gin.Context) {
		responses.Success(c, nil)
	})
	return r
}

func doRolesRequest(t *testing.T, r *gin.Engine) *responses.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func TestRequireRoles_Allow(t *testing.T) {
	authz := &stubAuthzService{roles: map[string]string{"admin": constants.RoleAdmin}}
	r := newRolesRouter(authz, "admin", constants.RoleAdmin)

	resp := doRolesRequest(t, r)
	assert.Equal(t, responses.CodeSuccess, resp.Code)
}

func TestRequireRoles_InsufficientRole(t *testing.T) {
	authz := &stubAuthzService{roles: map[string]string{"bob": constants.RoleUser}}
	r := newRolesRouter(authz, "bob", constants.RoleAdmin)

	resp := doRolesRequest(t, r)
	assert.Equal(t, responses.ErrInsufficientRole.Code, resp.Code)
}

func TestRequireRoles_EmptyRolesDenyAll(t *testing.T) {
	authz := &stubAuthzService{roles: map[string]string{"admin": constants.RoleAdmin}}
	r := newRolesRouter(authz, "admin")

	resp := doRolesRequest(t, r)
	assert.Equal(t, responses.ErrInsufficientRole.Code, resp.Code)
}

func TestRequireRoles_UnknownUser(t *testing.T) {
	authz := &stubAuthzService{roles: map[string]string{}}
	r := newRolesRouter(authz, "ghost", constants.RoleAdmin)

	// 用户不存在按未授权处理，与角色不足区分
	resp := doRolesRequest(t, r)
	assert.Equal(t, responses.ErrUnauthorized.Code, resp.Code)
}

func TestRequireRoles_NoUsername(t *testing.T) {
	authz := &stubAuthzService{roles: map[string]string{"admin": constants.RoleAdmin}}
	r := newRolesRouter(authz, "", constants.RoleAdmin)

	resp := doRolesRequest(t, r)
	assert.Equal(t, responses.ErrUnauthorized.Code, resp.Code)
}
