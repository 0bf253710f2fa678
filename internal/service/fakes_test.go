package service

import (
	"context"
	"testing"
	"time"

	"gateway-identity/internal/model"
	"gateway-identity/internal/pkg/config"
	"gateway-identity/internal/pkg/logger"
	pkgErrors "gateway-identity/pkg/responses"
)

func TestMain(m *testing.M) {
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{
				Secret:            "test-secret",
				AccessTokenExpire: 3600,
			},
		},
		Crypto: config.CryptoConfig{
			AESKey:     "0123456789abcdef0123456789abcdef",
			BcryptCost: 4,
		},
		Database: config.DatabaseConfig{QueryTimeout: 1},
	}
	_ = logger.Init(&config.LogConfig{Level: "error", Output: "stdout"})
	m.Run()
}

// memCredentialRepo 内存实现，行为与gorm仓储一致
type memCredentialRepo struct {
	seq   int64
	items map[int64]*model.Credential
}

func newMemCredentialRepo() *memCredentialRepo {
	return &memCredentialRepo{items: map[int64]*model.Credential{}}
}

func (r *memCredentialRepo) CreateIfNoActive(ctx context.Context, c *model.Credential) error {
	for _, existing := range r.items {
		if existing.IsActive && existing.Consumer() == c.Consumer() {
			return pkgErrors.ErrCredentialActive
		}
	}
	r.seq++
	c.ID = r.seq
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	r.items[c.ID] = c
	return nil
}

func (r *memCredentialRepo) FindByID(ctx context.Context, id int64) (*model.Credential, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return c, nil
}

func (r *memCredentialRepo) FindByConsumerID(ctx context.Context, consumer string) (*model.Credential, error) {
	var found *model.Credential
	for _, c := range r.items {
		if c.Consumer() == consumer && (found == nil || c.ID > found.ID) {
			found = c
		}
	}
	if found == nil {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return found, nil
}

func (r *memCredentialRepo) FindAllActiveByType(ctx context.Context, t model.CredentialType) ([]*model.Credential, error) {
	var list []*model.Credential
	for _, c := range r.items {
		if c.IsActive && c.Type == t {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *memCredentialRepo) FindAll(ctx context.Context) ([]*model.Credential, error) {
	var list []*model.Credential
	for _, c := range r.items {
		list = append(list, c)
	}
	return list, nil
}

func (r *memCredentialRepo) FindAllActive(ctx context.Context) ([]*model.Credential, error) {
	var list []*model.Credential
	for _, c := range r.items {
		if c.IsActive {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *memCredentialRepo) Save(ctx context.Context, c *model.Credential) error {
	if c.ID == 0 {
		return pkgErrors.ErrDatabaseError
	}
	c.UpdatedAt = time.Now()
	r.items[c.ID] = c
	return nil
}

// memUserRepo 内存用户仓储
type memUserRepo struct {
	seq   int64
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.seq++
	user.ID = r.seq
	user.CreatedAt = time.Now()
	r.users[user.Username] = user
	return nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pkgErrors.ErrRecordNotFound
}

func (r *memUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	var list []*model.User
	for _, u := range r.users {
		list = append(list, u)
	}
	return list, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *model.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *memUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	return nil
}

// memAppRepo 内存应用仓储
type memAppRepo struct {
	seq  int64
	apps map[string]*model.App
}

func newMemAppRepo() *memAppRepo {
	return &memAppRepo{apps: map[string]*model.App{}}
}

func (r *memAppRepo) Create(ctx context.Context, app *model.App) error {
	r.seq++
	app.ID = r.seq
	app.CreatedAt = time.Now()
	r.apps[app.AppID] = app
	return nil
}

func (r *memAppRepo) FindByAppID(ctx context.Context, appID string) (*model.App, error) {
	a, ok := r.apps[appID]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return a, nil
}

func (r *memAppRepo) FindAll(ctx context.Context) ([]*model.App, error) {
	var list []*model.App
	for _, a := range r.apps {
		list = append(list, a)
	}
	return list, nil
}
