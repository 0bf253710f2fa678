package service

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/model"
	"gateway-identity/internal/repository"
	"gateway-identity/pkg/constants"
	pkgErrors "gateway-identity/pkg/responses"
)

type AppService interface {
	Create(ctx context.Context, req *dto.CreateAppRequest) (*dto.AppResponse, error)
	List(ctx context.Context) ([]*dto.AppResponse, error)
}

type appService struct {
	appRepo repository.AppRepository
}

func NewAppService(appRepo repository.AppRepository) AppService {
	return &appService{appRepo: appRepo}
}

func (s *appService) Create(ctx context.Context, req *dto.CreateAppRequest) (*dto.AppResponse, error) {
	if _, err := s.appRepo.FindByAppID(ctx, req.AppID); err == nil {
		return nil, pkgErrors.ErrRecordExists
	} else if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return nil, err
	}

	app := &model.App{
		AppID:      req.AppID,
		Name:       req.Name,
		BaseStatus: model.BaseStatus{Status: constants.StatusEnabled},
	}
	if req.Description != "" {
		app.Description = &req.Description
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return toAppResponse(app), nil
}

func (s *appService) List(ctx context.Context) ([]*dto.AppResponse, error) {
	apps, err := s.appRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(apps, func(a *model.App, _ int) *dto.AppResponse {
		return toAppResponse(a)
	}), nil
}

func toAppResponse(a *model.App) *dto.AppResponse {
	return &dto.AppResponse{
		ID:          a.ID,
		AppID:       a.AppID,
		Name:        a.Name,
		Description: a.Description,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}
