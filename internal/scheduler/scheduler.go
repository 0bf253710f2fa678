package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gateway-identity/internal/pkg/config"
	"gateway-identity/internal/pkg/logger"
	"gateway-identity/internal/service"
)

// Scheduler 定时任务调度器，目前只有孤儿凭据巡检
type Scheduler struct {
	cron              *cron.Cron
	credentialService service.CredentialService
}

func NewScheduler(credentialService service.CredentialService) *Scheduler {
	return &Scheduler{
		cron:              cron.New(),
		credentialService: credentialService,
	}
}

// Start 注册并启动巡检任务
func (s *Scheduler) Start(cfg *config.AuditConfig) error {
	if !cfg.Enabled {
		return nil
	}

	spec := cfg.Cron
	if spec == "" {
		spec = "0 * * * *" // 每小时
	}

	_, err := s.cron.AddFunc(spec, func() {
		swept, err := s.credentialService.SweepOrphans(context.Background())
		if err != nil {
			logger.Warn("孤儿凭据巡检失败", zap.Error(err))
			return
		}
		if swept > 0 {
			logger.Info("孤儿凭据巡检完成", zap.Int("swept", swept))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
