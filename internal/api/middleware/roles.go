package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"gateway-identity/internal/service"
	"gateway-identity/pkg/constants"
	"gateway-identity/pkg/responses"
)

// RequireRoles 角色守卫
//
// 未挂载该中间件的路由不做角色检查；挂载但roles为空则拒绝所有请求。
// 角色每次从用户表重新读取，用户不存在按未授权处理（与角色不足区分）。
func RequireRoles(authz service.AuthorizationService, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(constants.ContextKeyUsername)
		if username == "" {
			responses.Error(c, responses.ErrUnauthorized)
			c.Abort()
			return
		}

		ok, err := authz.HasRole(c.Request.Context(), username, roles)
		if err != nil {
			if errors.Is(err, responses.ErrUserNotFound) {
				responses.Error(c, responses.ErrUnauthorized)
			} else {
				responses.Error(c, err)
			}
			c.Abort()
			return
		}
		if !ok {
			responses.Error(c, responses.ErrInsufficientRole)
			c.Abort()
			return
		}

		c.Next()
	}
}
