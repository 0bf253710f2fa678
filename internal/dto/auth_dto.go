package dto

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int       `json:"expires_in"` // 秒
	User        *UserInfo `json:"user"`
}

// UserInfo 用户信息（不含密码哈希）
type UserInfo struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Principal API Key认证成功后的请求级身份，不落库
type Principal struct {
	KeyID      string `json:"key_id"`
	ConsumerID string `json:"consumer_id"`
	Scope      string `json:"scope"`
}
