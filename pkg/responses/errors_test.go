package responses

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 业务码前三位对应HTTP语义: 4XX0000 / 5XX0000
func TestErrorCodeClasses(t *testing.T) {
	assert.Equal(t, 400, ErrBadRequest.Code/10000)
	assert.Equal(t, 401, ErrUnauthorized.Code/10000)
	assert.Equal(t, 403, ErrForbidden.Code/10000)
	assert.Equal(t, 404, ErrNotFound.Code/10000)
	assert.Equal(t, 409, ErrConflict.Code/10000)
	assert.Equal(t, 409, ErrCredentialActive.Code/10000)
	assert.Equal(t, 409, ErrCredentialRevoked.Code/10000)
	assert.Equal(t, 500, ErrInternalError.Code/10000)
	assert.Equal(t, 500, ErrHashingFailed.Code/10000)
	assert.Equal(t, 503, ErrUnavailable.Code/10000)
}

func TestHashingFailedDistinctCode(t *testing.T) {
	// 哈希失败与其他内部错误可按码区分
	assert.Equal(t, CodeHashingError, ErrHashingFailed.Code)
	assert.NotEqual(t, CodeInternalError, ErrHashingFailed.Code)
	assert.NotEqual(t, CodeDatabaseError, ErrHashingFailed.Code)
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(ErrInvalidAPIKey))
	assert.True(t, IsUnauthorized(ErrMissingAPIKey))
	assert.True(t, IsUnauthorized(ErrTokenExpired))

	assert.False(t, IsUnauthorized(ErrInsufficientRole))
	assert.False(t, IsUnauthorized(ErrCredentialActive))
	assert.False(t, IsUnauthorized(errors.New("plain error")))
}
