package service

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"gateway-identity/internal/repository"
	pkgErrors "gateway-identity/pkg/responses"
)

// AuthorizationService 基于用户角色的授权判断
// 角色每次从用户表重新读取，不信任Token里携带的角色，撤权下个请求即生效
type AuthorizationService interface {
	// HasRole 判断用户当前角色是否在所需角色列表内
	// 空的required集合不放行任何角色；用户不存在返回错误而不是静默拒绝
	HasRole(ctx context.Context, username string, required []string) (bool, error)
}

type authorizationService struct {
	userRepo repository.UserRepository
}

func NewAuthorizationService(userRepo repository.UserRepository) AuthorizationService {
	return &authorizationService{userRepo: userRepo}
}

func (s *authorizationService) HasRole(ctx context.Context, username string, required []string) (bool, error) {
	if len(required) == 0 {
		return false, nil
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			// 调用方据此区分"未认证"与"角色不足"
			return false, pkgErrors.ErrUserNotFound
		}
		return false, err
	}

	return lo.Contains(required, user.Role), nil
}
