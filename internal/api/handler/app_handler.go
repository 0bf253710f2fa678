package handler

import (
	"github.com/gin-gonic/gin"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/service"
	"gateway-identity/pkg/responses"
	"gateway-identity/pkg/utils"
)

type AppHandler struct {
	svc service.AppService
}

func NewAppHandler(svc service.AppService) *AppHandler {
	return &AppHandler{svc: svc}
}

// Create 注册应用
// @Summary 注册应用（仅管理员）
// @Tags App
// @Accept json
// @Produce json
// @Param request body dto.CreateAppRequest true "注册应用请求"
// @Success 200 {object} responses.Response{data=dto.AppResponse}
// @Router /api/v1/apps [post]
func (h *AppHandler) Create(c *gin.Context) {
	var req dto.CreateAppRequest
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

// List 应用列表
// @Summary 应用列表（仅管理员）
// @Tags App
// @Produce json
// @Success 200 {object} responses.Response{data=[]dto.AppResponse}
// @Router /api/v1/apps [get]
func (h *AppHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, list)
}
