package dto

import "encoding/json"

// CreateCredentialRequest 创建凭据请求
// secret 将被哈希后存储，服务端不会回传明文或哈希
type CreateCredentialRequest struct {
	ConsumerType string          `json:"consumer_type" binding:"required,oneof=user app"`
	ConsumerID   string          `json:"consumer_id"` // consumer_type=user 时必填
	AppID        string          `json:"app_id"`      // consumer_type=app 时必填
	Type         string          `json:"type" binding:"required,oneof=basic key jwt oauth2"`
	Secret       string          `json:"secret" binding:"required"`
	Scope        string          `json:"scope"` // 默认 admin
	Meta         json.RawMessage `json:"meta"`  // 非敏感展示信息（可选）
}

// UpdateCredentialRequest 更新凭据请求，仅更新出现的字段
type UpdateCredentialRequest struct {
	Scope    *string `json:"scope"`
	IsActive *bool   `json:"is_active"`
	Secret   *string `json:"secret"` // 重新哈希写入类型对应字段
}

// CredentialResponse 凭据响应（已脱敏，不含任何哈希字段）
type CredentialResponse struct {
	ID           int64           `json:"id"`
	ConsumerType string          `json:"consumer_type"`
	ConsumerID   *string         `json:"consumer_id,omitempty"`
	AppID        *string         `json:"app_id,omitempty"`
	Type         string          `json:"type"`
	Scope        string          `json:"scope"`
	KeyID        *string         `json:"key_id,omitempty"`
	IsActive     bool            `json:"is_active"`
	Meta         json.RawMessage `json:"meta_json,omitempty"`
	UpdatedBy    string          `json:"updated_by"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}
