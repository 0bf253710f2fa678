package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gateway-identity/internal/api/router"
	"gateway-identity/internal/pkg/config"
	"gateway-identity/internal/pkg/database"
	"gateway-identity/internal/pkg/logger"
	seedpkg "gateway-identity/internal/pkg/seed"
	"gateway-identity/internal/repository"
	"gateway-identity/internal/scheduler"
	"gateway-identity/internal/service"

	_ "gateway-identity/docs" // Swagger docs
)

// @title Gateway Identity API
// @version 1.0
// @description API网关身份层：凭据管理、API Key认证、角色授权

// @contact.name API Support
// @contact.email support@example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var (
	configFile = flag.String("config", "", "配置文件路径 (例如: -config=configs/config.yaml)")
	version    = flag.Bool("version", false, "显示版本信息")
)

const (
	appVersion = "1.0.0"
	appName    = "gateway-identity"
)

func main() {
	// 解析命令行参数
	flag.Parse()

	// 显示版本信息
	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}

	// init config logger
	var cfg *config.Config
	{
		// 优先级: 命令行参数 > 环境变量 > 默认路径
		configPath := getConfigPath()

		// 加载配置
		c, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("加载配置失败: %v\n", err)
			os.Exit(1)
		}
		cfg = c

		// 初始化日志
		if err := logger.Init(&cfg.Log); err != nil {
			fmt.Printf("初始化日志失败: %v\n", err)
			os.Exit(1)
		}
		logger.Info(fmt.Sprintf("Load config file: %s", configPath))

		defer func() {
			_ = logger.Close()
		}()
	}

	logger.Info(fmt.Sprintf("服务 %s 启动中...", appName), zap.String("version", appVersion))

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer func() {
		_ = database.Close()
	}()

	if err := database.Migrate(); err != nil {
		logger.Fatal("同步表结构失败", zap.Error(err))
	}

	logger.Info(fmt.Sprintf("数据库连接成功 %s:%v", cfg.Database.Host, cfg.Database.Port), zap.String("database", cfg.Database.Database))

	db := database.GetDB()

	// 初始化数据（管理员账户等）
	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewAppRepository(db)
	userService := service.NewUserService(userRepo)
	appService := service.NewAppService(appRepo)
	if cfg.Seed.File != "" {
		s, err := seedpkg.Load(cfg.Seed.File)
		if err != nil {
			logger.Fatal("读取seed文件失败", zap.Error(err))
		}
		if err := seedpkg.Apply(context.Background(), s, userService, appService); err != nil {
			logger.Fatal("初始化数据失败", zap.Error(err))
		}
		logger.Info("初始化数据完成", zap.String("file", cfg.Seed.File))
	}

	// 启动孤儿凭据巡检
	registry := service.NewConsumerRegistry(userRepo, appRepo)
	credentialService := service.NewCredentialService(repository.NewCredentialRepository(db), registry)
	taskScheduler := scheduler.NewScheduler(credentialService)
	if err := taskScheduler.Start(&cfg.Audit); err != nil {
		logger.Warn("定时任务调度器启动失败", zap.Error(err))
	}

	// 设置路由
	r := router.Setup(cfg, db)

	// 创建HTTP服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logger.Info(fmt.Sprintf("%s 服务启动成功", cfg.Server.Name),
			zap.String("address", addr),
			zap.String("mode", cfg.Server.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务正在关闭...")

	// 关闭定时任务调度器
	taskScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务已关闭")
}

// getConfigPath 获取配置文件路径
// 优先级: 命令行参数 > 环境变量 > 默认路径
func getConfigPath() string {
	// 1. 命令行参数
	if *configFile != "" {
		return *configFile
	}

	// 2. 环境变量
	if envConfig := os.Getenv("CONFIG_FILE"); envConfig != "" {
		return envConfig
	}

	// 3. 默认路径
	return "configs/config.yaml"
}
