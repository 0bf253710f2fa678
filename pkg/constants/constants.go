package constants

// 消费者类型
const (
	ConsumerTypeUser = "user"
	ConsumerTypeApp  = "app"
)

// 凭据类型
const (
	CredentialTypeBasic  = "basic"
	CredentialTypeKey    = "key"
	CredentialTypeJWT    = "jwt"
	CredentialTypeOAuth2 = "oauth2"
)

// 内置角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// 凭据默认值
const (
	DefaultScope    = "admin"
	UpdatedBySystem = "system"
)

// 状态
const (
	StatusEnabled  int8 = 1
	StatusDisabled int8 = 0
)

// JWT 相关
const (
	JWTTypeAccess = "access"
)

// HTTP Header
const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)

// Context Key
const (
	ContextKeyUser      = "user"
	ContextKeyUsername  = "username"
	ContextKeyPrincipal = "principal"
)

// APIKeySeparator API Key 格式: keyId:keySecret
const APIKeySeparator = ":"
