package responses

import "fmt"

// 错误码
const (
	CodeSuccess         = 2000000
	CodeBadRequest      = 4000000
	CodeUnauthorized    = 4010000
	CodeForbidden       = 4030000
	CodeNotFound        = 4040000
	CodeConflict        = 4090000
	CodeInternalError   = 5000000
	CodeDatabaseError   = 5001000
	CodeAuthError       = 5002000
	CodeValidationError = 5003000
	CodeHashingError    = 5004000
	CodeUnavailable     = 5030000
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// New 创建新错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsUnauthorized 判断是否为认证类错误(401xxxx)
func IsUnauthorized(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code/10000 == 401
	}
	return false
}

// 预定义错误
var (
	ErrBadRequest      = New(CodeBadRequest, "请求参数错误")
	ErrUnauthorized    = New(CodeUnauthorized, "未授权")
	ErrForbidden       = New(CodeForbidden, "禁止访问")
	ErrNotFound        = New(CodeNotFound, "资源不存在")
	ErrConflict        = New(CodeConflict, "资源冲突")
	ErrInternalError   = New(CodeInternalError, "内部服务器错误")
	ErrDatabaseError   = New(CodeDatabaseError, "数据库错误")
	ErrValidationError = New(CodeValidationError, "数据验证失败")
	ErrUnavailable     = New(CodeUnavailable, "服务暂时不可用，请稍后重试")

	// 具体业务错误
	ErrInvalidParams      = New(CodeBadRequest, "请求参数错误")
	ErrInvalidCredentials = New(CodeAuthError, "用户名或密码错误")
	ErrUserNotFound       = New(CodeNotFound, "用户不存在")
	ErrUserDisabled       = New(CodeForbidden, "用户已禁用")
	ErrInvalidToken       = New(CodeUnauthorized, "无效的Token")
	ErrTokenExpired       = New(CodeUnauthorized, "Token已过期")
	ErrRecordNotFound     = New(CodeNotFound, "记录不存在")
	ErrRecordExists       = New(CodeConflict, "记录已存在")

	// 凭据相关错误
	ErrConsumerNotFound  = New(CodeNotFound, "消费者不存在")
	ErrCredentialActive  = New(CodeConflict, "该消费者已存在激活的凭据")
	ErrCredentialRevoked = New(CodeConflict, "凭据已停用，无法重新激活")
	ErrHashingFailed     = New(CodeHashingError, "密钥哈希失败")
	ErrMissingAPIKey     = New(CodeUnauthorized, "缺少API Key")
	ErrAPIKeyFormat      = New(CodeUnauthorized, "API Key格式错误")
	ErrInvalidAPIKey     = New(CodeUnauthorized, "无效的API Key")
	ErrInsufficientRole  = New(CodeForbidden, "角色权限不足")
)
