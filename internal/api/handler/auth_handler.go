package handler

import (
	"github.com/gin-gonic/gin"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/service"
	"gateway-identity/pkg/constants"
	"gateway-identity/pkg/responses"
	"gateway-identity/pkg/utils"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 登录
// @Summary 用户登录
// @Description 本地用户登录，返回签名Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} dto.LoginResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Logout 登出
// @Summary 用户登出
// @Description Token无状态，始终成功
// @Tags 认证
// @Produce json
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, nil)
}

// GetMe 获取当前用户信息
// @Summary 获取当前用户信息
// @Description 从JWT Token中获取当前登录用户信息
// @Tags 认证
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.UserInfo
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	// 从context中获取用户信息(由认证中间件设置)
	userInfo, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		responses.ErrorWithCode(c, responses.CodeUnauthorized, "未登录")
		return
	}

	responses.Success(c, userInfo)
}
