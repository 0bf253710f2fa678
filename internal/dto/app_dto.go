package dto

// CreateAppRequest 注册应用请求
type CreateAppRequest struct {
	AppID       string `json:"app_id" binding:"required,max=64"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// AppResponse 应用响应
type AppResponse struct {
	ID          int64   `json:"id"`
	AppID       string  `json:"app_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Status      int8    `json:"status"`
	CreatedAt   string  `json:"created_at"`
}
