package service

import (
	"context"
	"errors"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/pkg/config"
	"gateway-identity/internal/pkg/crypto"
	"gateway-identity/internal/pkg/jwt"
	"gateway-identity/internal/repository"
	"gateway-identity/pkg/constants"
	pkgErrors "gateway-identity/pkg/responses"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout Token无状态，服务端无需失效处理
	Logout(ctx context.Context) error
	VerifyToken(token string) (*dto.UserInfo, error)
}

type authService struct {
	cfg      *config.AuthConfig
	userRepo repository.UserRepository
}

func NewAuthService(cfg *config.AuthConfig, userRepo repository.UserRepository) AuthService {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 查询用户
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// 检查状态
	if user.Status != constants.StatusEnabled {
		return nil, pkgErrors.ErrUserDisabled
	}

	// 无密码哈希或验证失败一律按认证失败返回，不区分原因
	if user.Password == "" || !crypto.VerifySecret(req.Password, user.Password) {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	// 更新最后登录时间
	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	displayName := user.Username
	if user.DisplayName != nil {
		displayName = *user.DisplayName
	}

	// 生成Token
	accessToken, err := jwt.GenerateAccessToken(user.Username, email, user.Role)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成AccessToken失败", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   s.cfg.JWT.AccessTokenExpire,
		User: &dto.UserInfo{
			ID:          user.ID,
			Username:    user.Username,
			Email:       email,
			DisplayName: displayName,
			Role:        user.Role,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return nil
}

func (s *authService) VerifyToken(token string) (*dto.UserInfo, error) {
	claims, err := jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return &dto.UserInfo{
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}
