package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/service"
	"gateway-identity/pkg/responses"
	"gateway-identity/pkg/utils"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create 创建用户
// @Summary 创建用户（仅管理员）
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "创建用户请求"
// @Success 200 {object} responses.Response{data=dto.UserResponse}
// @Router /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// List 用户列表
// @Summary 用户列表（仅管理员）
// @Tags User
// @Produce json
// @Success 200 {object} responses.Response{data=[]dto.UserResponse}
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, list)
}

// UpdateRole 更新用户角色
// @Summary 更新用户角色（仅管理员）
// @Tags User
// @Accept json
// @Produce json
// @Param id path int64 true "用户ID"
// @Param request body dto.UpdateUserRoleRequest true "角色请求"
// @Success 200 {object} responses.Response{data=dto.UserResponse}
// @Router /api/v1/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的 ID", err.Error())
		return
	}
	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}
	resp, err := h.svc.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}
