package model

import (
	"gorm.io/datatypes"

	"gateway-identity/pkg/constants"
)

const CredentialTableName = "credentials"

// ConsumerType 凭据归属的消费者类型
type ConsumerType string

const (
	ConsumerTypeUser ConsumerType = constants.ConsumerTypeUser
	ConsumerTypeApp  ConsumerType = constants.ConsumerTypeApp
)

// CredentialType 凭据类型
type CredentialType string

const (
	CredentialTypeBasic  CredentialType = constants.CredentialTypeBasic
	CredentialTypeKey    CredentialType = constants.CredentialTypeKey
	CredentialTypeJWT    CredentialType = constants.CredentialTypeJWT
	CredentialTypeOAuth2 CredentialType = constants.CredentialTypeOAuth2
)

// Credential 凭据（哈希字段不落到任何对外响应）
//
// 说明：
// - consumer_id / app_id 二选一，由 consumer_type 决定
// - key_id: KEY类型凭据对外公开的标识，与主键无关
// - 删除仅通过 is_active=false 软删除，记录保留用于审计
type Credential struct {
	BaseModel

	ConsumerType ConsumerType `gorm:"size:16;not null;index" json:"consumer_type"`
	ConsumerID   *string      `gorm:"size:64;index" json:"consumer_id,omitempty"`
	AppID        *string      `gorm:"size:64;index" json:"app_id,omitempty"`

	Type     CredentialType `gorm:"size:16;not null;index" json:"type"`
	Scope    string         `gorm:"size:64;not null;default:'admin'" json:"scope"`
	IsActive bool           `gorm:"not null;default:true;index" json:"is_active"`

	// 敏感字段，仅内部可见
	PasswordHash  *string `gorm:"size:255" json:"-"`
	PasswordPlain *string `gorm:"column:password_plain;size:255" json:"-"` // 遗留字段，仅兼容旧数据
	KeyID         *string `gorm:"column:key_id;size:64;uniqueIndex" json:"key_id,omitempty"`
	KeySecretHash *string `gorm:"size:255" json:"-"`
	SecretHash    *string `gorm:"size:255" json:"-"`

	MetaJSON  datatypes.JSON `gorm:"column:meta_json;type:json" json:"meta_json,omitempty"`
	UpdatedBy string         `gorm:"size:64;not null;default:'system'" json:"updated_by"`
}

func (Credential) TableName() string {
	return CredentialTableName
}

// Consumer 返回凭据归属的消费者标识（user 为 consumer_id，app 为 app_id）
func (c *Credential) Consumer() string {
	if c.ConsumerType == ConsumerTypeApp && c.AppID != nil {
		return *c.AppID
	}
	if c.ConsumerID != nil {
		return *c.ConsumerID
	}
	return ""
}

// StoredSecretHash 返回该凭据类型对应的哈希字段
func (c *Credential) StoredSecretHash() *string {
	switch c.Type {
	case CredentialTypeBasic:
		return c.PasswordHash
	case CredentialTypeKey:
		return c.KeySecretHash
	default:
		return c.SecretHash
	}
}

// SecretMaterial 按凭据类型划分的密钥材料，每个变体只携带自己相关的字段
type SecretMaterial interface {
	apply(c *Credential)
}

// BasicSecret BASIC类型：密码哈希
type BasicSecret struct {
	PasswordHash string
}

func (m BasicSecret) apply(c *Credential) {
	c.PasswordHash = &m.PasswordHash
}

// KeySecret KEY类型：公开keyId + 密钥哈希
type KeySecret struct {
	KeyID      string
	SecretHash string
}

func (m KeySecret) apply(c *Credential) {
	c.KeyID = &m.KeyID
	c.KeySecretHash = &m.SecretHash
}

// TokenSecret JWT/OAUTH2类型：密钥哈希
type TokenSecret struct {
	SecretHash string
}

func (m TokenSecret) apply(c *Credential) {
	c.SecretHash = &m.SecretHash
}

// SetSecret 写入类型对应的密钥字段，其余字段不动
func (c *Credential) SetSecret(m SecretMaterial) {
	m.apply(c)
}
