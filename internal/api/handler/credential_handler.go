package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/service"
	"gateway-identity/pkg/constants"
	"gateway-identity/pkg/responses"
	"gateway-identity/pkg/utils"
)

type CredentialHandler struct {
	svc service.CredentialService
}

func NewCredentialHandler(svc service.CredentialService) *CredentialHandler {
	return &CredentialHandler{svc: svc}
}

// Create 创建凭据
// @Summary 创建凭据
// @Tags Credential
// @Accept json
// @Produce json
// @Param request body dto.CreateCredentialRequest true "创建凭据请求"
// @Success 200 {object} responses.Response{data=dto.CredentialResponse}
// @Router /api/v1/credentials [post]
func (h *CredentialHandler) Create(c *gin.Context) {
	var req dto.CreateCredentialRequest
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

// List 凭据列表
// @Summary 凭据列表（已脱敏）
// @Tags Credential
// @Produce json
// @Success 200 {object} responses.Response{data=[]dto.CredentialResponse}
// @Router /api/v1/credentials [get]
func (h *CredentialHandler) List(c *gin.Context) {
	list, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, list)
}

// Get 获取凭据详情
// @Summary 凭据详情（已脱敏)
// @Tags Credential
// @Produce json
// @Param id path int64 true "凭据ID"
// @Success 200 {object} responses.Response{data=dto.CredentialResponse}
// @Router /api/v1/credentials/{id} [get]
func (h *CredentialHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的 ID", err.Error())
		return
	}
	resp, err := h.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// Update 更新凭据
// @Summary 更新凭据（仅更新出现的字段）
// @Tags Credential
// @Accept json
// @Produce json
// @Param id path int64 true "凭据ID"
// @Param request body dto.UpdateCredentialRequest true "更新凭据请求"
// @Success 200 {object} responses.Response{data=dto.CredentialResponse}
// @Router /api/v1/credentials/{id} [put]
func (h *CredentialHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的 ID", err.Error())
		return
	}
	var req dto.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	// 操作者来自登录态，缺省为system
	updatedBy := c.GetString(constants.ContextKeyUsername)

	resp, err := h.svc.Update(c.Request.Context(), id, &req, updatedBy)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// Delete 停用凭据（软删除）
// @Summary 停用凭据
// @Description 唯一的删除路径：置is_active=false，记录保留
// @Tags Credential
// @Produce json
// @Param id path int64 true "凭据ID"
// @Success 200 {object} responses.Response{data=dto.CredentialResponse}
// @Router /api/v1/credentials/{id} [delete]
func (h *CredentialHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的 ID", err.Error())
		return
	}
	resp, err := h.svc.Remove(c.Request.Context(), id)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}
