package service

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/model"
	"gateway-identity/internal/pkg/crypto"
	"gateway-identity/internal/repository"
	"gateway-identity/pkg/constants"
	pkgErrors "gateway-identity/pkg/responses"
)

type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context) ([]*dto.UserResponse, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error)
	UpdateRole(ctx context.Context, id int64, role string) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, pkgErrors.ErrRecordExists
	} else if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := crypto.HashSecret(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = constants.RoleUser
	}

	user := &model.User{
		Username:   req.Username,
		Password:   hash,
		Role:       role,
		BaseStatus: model.BaseStatus{Status: constants.StatusEnabled},
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.DisplayName != "" {
		user.DisplayName = &req.DisplayName
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u *model.User, _ int) *dto.UserResponse {
		return toUserResponse(u)
	}), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateRole 角色仅管理员可变更（由路由守卫保证）
func (s *userService) UpdateRole(ctx context.Context, id int64, role string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// toUserResponse 密码哈希不进入响应
func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
