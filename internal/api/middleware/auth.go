package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/pkg/jwt"
	"gateway-identity/pkg/constants"
	"gateway-identity/pkg/responses"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取Authorization header
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			responses.ErrorWithCode(c, responses.CodeUnauthorized, "缺少Authorization Header")
			c.Abort()
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			responses.ErrorWithCode(c, responses.CodeUnauthorized, "Authorization格式错误")
			c.Abort()
			return
		}

		// 提取Token
		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		// 验证Token
		claims, err := jwt.ValidateToken(token)
		if err != nil {
			responses.Error(c, err)
			c.Abort()
			return
		}

		// 检查Token类型
		if claims.Type != constants.JWTTypeAccess {
			responses.ErrorWithCode(c, responses.CodeUnauthorized, "无效的Token类型")
			c.Abort()
			return
		}

		// 将用户信息存入context
		userInfo := &dto.UserInfo{
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
		}
		c.Set(constants.ContextKeyUser, userInfo)
		c.Set(constants.ContextKeyUsername, claims.Username)

		c.Next()
	}
}
