package repository

import (
	"context"

	"gorm.io/gorm"

	"gateway-identity/internal/model"
	pkgErrors "gateway-identity/pkg/responses"
)

type AppRepository interface {
	Create(ctx context.Context, app *model.App) error
	FindByAppID(ctx context.Context, appID string) (*model.App, error)
	FindAll(ctx context.Context) ([]*model.App, error)
}

type appRepository struct {
	db *gorm.DB
}

func NewAppRepository(db *gorm.DB) AppRepository {
	return &appRepository{db: db}
}

func (r *appRepository) Create(ctx context.Context, app *model.App) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return wrapDBError(err, "注册应用失败")
	}
	return nil
}

func (r *appRepository) FindByAppID(ctx context.Context, appID string) (*model.App, error) {
	var app model.App
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).Where("app_id = ?", appID).First(&app).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgErrors.ErrRecordNotFound
			}
			return wrapDBError(err, "查询应用失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *appRepository) FindAll(ctx context.Context) ([]*model.App, error) {
	var apps []*model.App
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).Order("id ASC").Find(&apps).Error; err != nil {
			return wrapDBError(err, "查询应用列表失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}
