package dto

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,max=50"`
	Password    string `json:"password" binding:"required,min=6"`
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateUserRoleRequest 更新用户角色请求
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

// UserResponse 用户响应
type UserResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Role        string  `json:"role"`
	Status      int8    `json:"status"`
	CreatedAt   string  `json:"created_at"`
}
