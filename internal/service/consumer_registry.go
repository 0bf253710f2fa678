package service

import (
	"context"
	"errors"

	"gateway-identity/internal/model"
	"gateway-identity/internal/repository"
	pkgErrors "gateway-identity/pkg/responses"
)

// ConsumerRegistry 消费者存在性检查，委托给用户/应用登记表
type ConsumerRegistry interface {
	Exists(ctx context.Context, consumerType model.ConsumerType, id string) (bool, error)
}

type consumerRegistry struct {
	userRepo repository.UserRepository
	appRepo  repository.AppRepository
}

func NewConsumerRegistry(userRepo repository.UserRepository, appRepo repository.AppRepository) ConsumerRegistry {
	return &consumerRegistry{
		userRepo: userRepo,
		appRepo:  appRepo,
	}
}

// Exists user按用户名查询，app按app_id查询
func (r *consumerRegistry) Exists(ctx context.Context, consumerType model.ConsumerType, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	var err error
	switch consumerType {
	case model.ConsumerTypeApp:
		_, err = r.appRepo.FindByAppID(ctx, id)
	default:
		_, err = r.userRepo.FindByUsername(ctx, id)
	}

	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
