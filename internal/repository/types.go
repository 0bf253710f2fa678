package repository

import (
	"context"
	"errors"
	"time"

	"gateway-identity/internal/pkg/config"
	pkgErrors "gateway-identity/pkg/responses"
)

// withQueryTimeout 为单次数据库调用设置有界超时
func withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := config.DefaultQueryTimeout
	if config.GlobalConfig != nil && config.GlobalConfig.Database.QueryTimeout > 0 {
		timeout = config.GlobalConfig.Database.QueryTimeout
	}
	return context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
}

// wrapDBError 区分瞬时故障与普通数据库错误
// 超时/取消作为可重试的 Unavailable 上抛，与 NotFound 区分
func wrapDBError(err error, message string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return pkgErrors.ErrUnavailable
	}
	return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, message, err)
}

// retryRead 幂等读操作最多透明重试一次（仅瞬时故障）
// 写操作不重试，避免并发下重复创建激活凭据
func retryRead(fn func() error) error {
	err := fn()
	if err == pkgErrors.ErrUnavailable {
		err = fn()
	}
	return err
}
