package handler

import (
	"github.com/gin-gonic/gin"

	"gateway-identity/internal/api/middleware"
	"gateway-identity/pkg/responses"
)

// GatewayHandler API Key守卫后的受保护路由
type GatewayHandler struct{}

func NewGatewayHandler() *GatewayHandler {
	return &GatewayHandler{}
}

// Whoami 返回当前请求解析出的Principal
// @Summary 查询当前Principal
// @Description 需要有效的API Key（X-API-Key 或 Authorization: Bearer keyId:keySecret）
// @Tags Gateway
// @Produce json
// @Success 200 {object} responses.Response{data=dto.Principal}
// @Router /api/v1/gateway/whoami [get]
func (h *GatewayHandler) Whoami(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		responses.ErrorWithCode(c, responses.CodeUnauthorized, "未认证")
		return
	}
	responses.Success(c, principal)
}
