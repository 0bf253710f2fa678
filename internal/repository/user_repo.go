package repository

import (
	"context"

	"gorm.io/gorm"

	"gateway-identity/internal/model"
	pkgErrors "gateway-identity/pkg/responses"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id int64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户失败")
	}
	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgErrors.ErrRecordNotFound
			}
			return wrapDBError(err, "查询用户失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgErrors.ErrRecordNotFound
			}
			return wrapDBError(err, "查询用户失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
			return wrapDBError(err, "查询用户列表失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return wrapDBError(err, "更新用户失败")
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("last_login_at", gorm.Expr("NOW()")).Error; err != nil {
		return wrapDBError(err, "更新登录时间失败")
	}
	return nil
}
