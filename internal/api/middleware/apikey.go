package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/pkg/config"
	"gateway-identity/internal/service"
	"gateway-identity/pkg/constants"
	"gateway-identity/pkg/responses"
)

// APIKeyMiddleware API Key认证中间件
//
// 提取顺序: X-API-Key → Authorization(去掉Bearer前缀)
// Key格式: keyId:keySecret；无分隔符时走遗留静态Key路径（需legacy_enabled）
// 成功后将Principal存入context
func APIKeyMiddleware(credentialService service.CredentialService, cfg *config.APIKeyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 提取Key
		raw := c.GetHeader(constants.HeaderAPIKey)
		if raw == "" {
			authHeader := c.GetHeader(constants.HeaderAuthorization)
			raw = strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)
		}
		if raw == "" {
			responses.Error(c, responses.ErrMissingAPIKey)
			c.Abort()
			return
		}

		// 解析 keyId:keySecret
		keyID, keySecret, found := strings.Cut(raw, constants.APIKeySeparator)
		if !found {
			// 遗留兼容：整体与配置的静态Key比对
			if cfg.LegacyEnabled && cfg.StaticKey != "" && raw == cfg.StaticKey {
				c.Set(constants.ContextKeyPrincipal, &dto.Principal{
					ConsumerID: constants.UpdatedBySystem,
					Scope:      constants.DefaultScope,
				})
				c.Next()
				return
			}
			responses.Error(c, responses.ErrAPIKeyFormat)
			c.Abort()
			return
		}

		principal, err := credentialService.VerifyAPIKey(c.Request.Context(), keyID, keySecret)
		if err != nil {
			responses.Error(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// GetPrincipal 从context取出API Key认证产生的Principal
func GetPrincipal(c *gin.Context) (*dto.Principal, bool) {
	v, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	principal, ok := v.(*dto.Principal)
	return principal, ok
}
