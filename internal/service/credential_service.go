package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"gateway-identity/internal/dto"
	"gateway-identity/internal/model"
	"gateway-identity/internal/pkg/crypto"
	"gateway-identity/internal/pkg/logger"
	"gateway-identity/internal/repository"
	"gateway-identity/pkg/constants"
	pkgErrors "gateway-identity/pkg/responses"
)

type CredentialService interface {
	Create(ctx context.Context, req *dto.CreateCredentialRequest) (*dto.CredentialResponse, error)
	FindAll(ctx context.Context) ([]*dto.CredentialResponse, error)
	FindOne(ctx context.Context, id int64) (*dto.CredentialResponse, error)
	// FindByConsumerID 未脱敏，仅限内部调用方（API Key校验），不得对外暴露
	FindByConsumerID(ctx context.Context, consumer string) (*model.Credential, error)
	Update(ctx context.Context, id int64, req *dto.UpdateCredentialRequest, updatedBy string) (*dto.CredentialResponse, error)
	Remove(ctx context.Context, id int64) (*dto.CredentialResponse, error)
	// VerifyAPIKey 按keyId定位激活的KEY凭据并校验密钥，成功返回请求级身份
	VerifyAPIKey(ctx context.Context, keyID, keySecret string) (*dto.Principal, error)
	// SweepOrphans 停用消费者已不存在的激活凭据，返回处理数量
	SweepOrphans(ctx context.Context) (int, error)
}

type credentialService struct {
	repo     repository.CredentialRepository
	registry ConsumerRegistry
}

func NewCredentialService(repo repository.CredentialRepository, registry ConsumerRegistry) CredentialService {
	return &credentialService{
		repo:     repo,
		registry: registry,
	}
}

// Create 创建流程：存在性检查 → 唯一性检查 → 哈希 → 持久化，逐级短路
// 唯一性检查与写入在仓储层同一事务内完成，避免并发下重复激活
func (s *credentialService) Create(ctx context.Context, req *dto.CreateCredentialRequest) (*dto.CredentialResponse, error) {
	consumerType := model.ConsumerType(req.ConsumerType)

	// consumer_id / app_id 互斥
	consumer, err := consumerOf(consumerType, req.ConsumerID, req.AppID)
	if err != nil {
		return nil, err
	}

	// 1. 消费者必须已注册
	exists, err := s.registry.Exists(ctx, consumerType, consumer)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, pkgErrors.ErrConsumerNotFound
	}

	// 2-3. 哈希（唯一性检查在事务内做）
	hash, err := crypto.HashSecret(req.Secret)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeHashingError, pkgErrors.ErrHashingFailed.Message, err)
	}

	// 4. 构建凭据
	c := &model.Credential{
		ConsumerType: consumerType,
		Type:         model.CredentialType(req.Type),
		Scope:        req.Scope,
		IsActive:     true,
		UpdatedBy:    constants.UpdatedBySystem,
	}
	if c.Scope == "" {
		c.Scope = constants.DefaultScope
	}
	if consumerType == model.ConsumerTypeApp {
		c.AppID = &consumer
	} else {
		c.ConsumerID = &consumer
	}
	if len(req.Meta) > 0 {
		c.MetaJSON = datatypes.JSON(req.Meta)
	}
	c.SetSecret(secretMaterialFor(c.Type, hash))

	// 5. 持久化（含锁定的唯一性检查），脱敏返回
	if err := s.repo.CreateIfNoActive(ctx, c); err != nil {
		return nil, err
	}
	return toCredentialResponse(c), nil
}

func (s *credentialService) FindAll(ctx context.Context) ([]*dto.CredentialResponse, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(c *model.Credential, _ int) *dto.CredentialResponse {
		return toCredentialResponse(c)
	}), nil
}

func (s *credentialService) FindOne(ctx context.Context, id int64) (*dto.CredentialResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCredentialResponse(c), nil
}

func (s *credentialService) FindByConsumerID(ctx context.Context, consumer string) (*model.Credential, error) {
	return s.repo.FindByConsumerID(ctx, consumer)
}

// Update 仅更新出现的字段；secret重新哈希写入类型对应字段，其余不动
// 软删除是终态：已停用的凭据不可经由更新重新激活，否则会绕过创建时的唯一性检查
func (s *credentialService) Update(ctx context.Context, id int64, req *dto.UpdateCredentialRequest, updatedBy string) (*dto.CredentialResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Scope != nil {
		c.Scope = *req.Scope
	}
	if req.IsActive != nil {
		if *req.IsActive && !c.IsActive {
			return nil, pkgErrors.ErrCredentialRevoked
		}
		c.IsActive = *req.IsActive
	}
	if req.Secret != nil {
		hash, err := crypto.HashSecret(*req.Secret)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeHashingError, pkgErrors.ErrHashingFailed.Message, err)
		}
		c.SetSecret(rehashMaterialFor(c, hash))
	}

	if updatedBy == "" {
		updatedBy = constants.UpdatedBySystem
	}
	c.UpdatedBy = updatedBy

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCredentialResponse(c), nil
}

// Remove 软删除：唯一的删除路径，记录保留
func (s *credentialService) Remove(ctx context.Context, id int64) (*dto.CredentialResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.IsActive = false
	c.UpdatedBy = constants.UpdatedBySystem

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCredentialResponse(c), nil
}

// VerifyAPIKey 解析流程中的内部错误统一收敛为无效API Key，不泄露细节
func (s *credentialService) VerifyAPIKey(ctx context.Context, keyID, keySecret string) (*dto.Principal, error) {
	candidates, err := s.repo.FindAllActiveByType(ctx, model.CredentialTypeKey)
	if err != nil {
		if pkgErrors.IsUnauthorized(err) {
			return nil, err
		}
		return nil, pkgErrors.ErrInvalidAPIKey
	}

	match, ok := lo.Find(candidates, func(c *model.Credential) bool {
		return c.KeyID != nil && *c.KeyID == keyID
	})
	if !ok {
		return nil, pkgErrors.ErrInvalidAPIKey
	}

	// 取该消费者的完整凭据（未脱敏）
	full, err := s.repo.FindByConsumerID(ctx, match.Consumer())
	if err != nil {
		if pkgErrors.IsUnauthorized(err) {
			return nil, err
		}
		return nil, pkgErrors.ErrInvalidAPIKey
	}
	if full.KeySecretHash == nil || *full.KeySecretHash == "" {
		return nil, pkgErrors.ErrInvalidAPIKey
	}

	if !crypto.VerifySecret(keySecret, *full.KeySecretHash) {
		return nil, pkgErrors.ErrInvalidAPIKey
	}

	return &dto.Principal{
		KeyID:      keyID,
		ConsumerID: full.Consumer(),
		Scope:      full.Scope,
	}, nil
}

func (s *credentialService) SweepOrphans(ctx context.Context) (int, error) {
	list, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, c := range list {
		exists, err := s.registry.Exists(ctx, c.ConsumerType, c.Consumer())
		if err != nil {
			return swept, err
		}
		if exists {
			continue
		}

		c.IsActive = false
		c.UpdatedBy = constants.UpdatedBySystem
		if err := s.repo.Save(ctx, c); err != nil {
			return swept, err
		}
		swept++
		logger.Info("停用孤儿凭据",
			zap.Int64("credential_id", c.ID),
			zap.String("consumer", c.Consumer()),
		)
	}
	return swept, nil
}

// consumerOf 校验consumer_id/app_id互斥并返回生效的消费者标识
func consumerOf(t model.ConsumerType, consumerID, appID string) (string, error) {
	switch t {
	case model.ConsumerTypeApp:
		if appID == "" || consumerID != "" {
			return "", pkgErrors.New(pkgErrors.CodeBadRequest, "consumer_type=app 时仅 app_id 可填")
		}
		return appID, nil
	default:
		if consumerID == "" || appID != "" {
			return "", pkgErrors.New(pkgErrors.CodeBadRequest, "consumer_type=user 时仅 consumer_id 可填")
		}
		return consumerID, nil
	}
}

// secretMaterialFor 创建时按凭据类型生成密钥材料，KEY类型生成新的公开keyId
func secretMaterialFor(t model.CredentialType, hash string) model.SecretMaterial {
	switch t {
	case model.CredentialTypeBasic:
		return model.BasicSecret{PasswordHash: hash}
	case model.CredentialTypeKey:
		return model.KeySecret{KeyID: uuid.NewString(), SecretHash: hash}
	default:
		return model.TokenSecret{SecretHash: hash}
	}
}

// rehashMaterialFor 更新时保持已有keyId不变
func rehashMaterialFor(c *model.Credential, hash string) model.SecretMaterial {
	switch c.Type {
	case model.CredentialTypeBasic:
		return model.BasicSecret{PasswordHash: hash}
	case model.CredentialTypeKey:
		keyID := ""
		if c.KeyID != nil {
			keyID = *c.KeyID
		}
		return model.KeySecret{KeyID: keyID, SecretHash: hash}
	default:
		return model.TokenSecret{SecretHash: hash}
	}
}

// toCredentialResponse 脱敏：任何哈希字段都不出现在响应中
func toCredentialResponse(c *model.Credential) *dto.CredentialResponse {
	if c == nil {
		return nil
	}
	resp := &dto.CredentialResponse{
		ID:           c.ID,
		ConsumerType: string(c.ConsumerType),
		ConsumerID:   c.ConsumerID,
		AppID:        c.AppID,
		Type:         string(c.Type),
		Scope:        c.Scope,
		KeyID:        c.KeyID,
		IsActive:     c.IsActive,
		UpdatedBy:    c.UpdatedBy,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
	if len(c.MetaJSON) > 0 {
		resp.Meta = json.RawMessage(c.MetaJSON)
	}
	return resp
}
