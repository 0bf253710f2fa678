package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gateway-identity/internal/model"
	pkgErrors "gateway-identity/pkg/responses"
)

type CredentialRepository interface {
	// CreateIfNoActive 创建凭据，同一事务内锁定检查该消费者是否已有激活凭据
	CreateIfNoActive(ctx context.Context, c *model.Credential) error
	FindByID(ctx context.Context, id int64) (*model.Credential, error)
	FindByConsumerID(ctx context.Context, consumer string) (*model.Credential, error)
	FindAllActiveByType(ctx context.Context, t model.CredentialType) ([]*model.Credential, error)
	FindAll(ctx context.Context) ([]*model.Credential, error)
	FindAllActive(ctx context.Context) ([]*model.Credential, error)
	Save(ctx context.Context, c *model.Credential) error
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

// CreateIfNoActive 并发的create依赖这里的行锁串行化，不在进程内加锁
func (r *credentialRepository) CreateIfNoActive(ctx context.Context, c *model.Credential) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Model(&model.Credential{}).
			Where("is_active = ?", true)
		if c.ConsumerType == model.ConsumerTypeApp {
			q = q.Where("app_id = ?", c.AppID)
		} else {
			q = q.Where("consumer_id = ?", c.ConsumerID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return pkgErrors.ErrCredentialActive
		}
		return tx.Create(c).Error
	})
	if err != nil {
		if err == pkgErrors.ErrCredentialActive {
			return err
		}
		return wrapDBError(err, "创建凭据失败")
	}
	return nil
}

func (r *credentialRepository) FindByID(ctx context.Context, id int64) (*model.Credential, error) {
	var c model.Credential
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgErrors.ErrRecordNotFound
			}
			return wrapDBError(err, "查询凭据失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByConsumerID 返回消费者的凭据（未脱敏，仅限内部调用方）
func (r *credentialRepository) FindByConsumerID(ctx context.Context, consumer string) (*model.Credential, error) {
	var c model.Credential
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).
			Where("consumer_id = ? OR app_id = ?", consumer, consumer).
			Order("id DESC").First(&c).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgErrors.ErrRecordNotFound
			}
			return wrapDBError(err, "查询凭据失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *credentialRepository) FindAllActiveByType(ctx context.Context, t model.CredentialType) ([]*model.Credential, error) {
	var list []*model.Credential
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).
			Where("type = ? AND is_active = ?", t, true).
			Find(&list).Error; err != nil {
			return wrapDBError(err, "查询凭据列表失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *credentialRepository) FindAll(ctx context.Context) ([]*model.Credential, error) {
	var list []*model.Credential
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).Order("id DESC").Find(&list).Error; err != nil {
			return wrapDBError(err, "查询凭据列表失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *credentialRepository) FindAllActive(ctx context.Context) ([]*model.Credential, error) {
	var list []*model.Credential
	err := retryRead(func() error {
		ctx, cancel := withQueryTimeout(ctx)
		defer cancel()

		if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&list).Error; err != nil {
			return wrapDBError(err, "查询凭据列表失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *credentialRepository) Save(ctx context.Context, c *model.Credential) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return wrapDBError(err, "更新凭据失败")
	}
	return nil
}
