package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"gateway-identity/internal/api/handler"
	"gateway-identity/internal/api/middleware"
	"gateway-identity/internal/pkg/config"
	"gateway-identity/internal/repository"
	"gateway-identity/internal/service"
	"gateway-identity/pkg/constants"
)

// Setup 设置路由
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查（公开路由，绕过所有守卫）
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewAppRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)

	// 初始化Service
	registry := service.NewConsumerRegistry(userRepo, appRepo)
	credentialService := service.NewCredentialService(credentialRepo, registry)
	authService := service.NewAuthService(&cfg.Auth, userRepo)
	authzService := service.NewAuthorizationService(userRepo)
	userService := service.NewUserService(userRepo)
	appService := service.NewAppService(appRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	credentialHandler := handler.NewCredentialHandler(credentialService)
	userHandler := handler.NewUserHandler(userService)
	appHandler := handler.NewAppHandler(appService)
	gatewayHandler := handler.NewGatewayHandler()

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证相关(无需token)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
		}

		// 需要登录态的路由
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/auth/me", authHandler.GetMe)

			// 凭据管理（仅管理员）
			credentialGroup := authed.Group("/credentials")
			credentialGroup.Use(middleware.RequireRoles(authzService, constants.RoleAdmin))
			{
				credentialGroup.POST("", credentialHandler.Create)
				credentialGroup.GET("", credentialHandler.List)
				credentialGroup.GET("/:id", credentialHandler.Get)
				credentialGroup.PUT("/:id", credentialHandler.Update)
				credentialGroup.DELETE("/:id", credentialHandler.Delete)
			}

			// 用户管理（仅管理员）
			userGroup := authed.Group("/users")
			userGroup.Use(middleware.RequireRoles(authzService, constants.RoleAdmin))
			{
				userGroup.POST("", userHandler.Create)
				userGroup.GET("", userHandler.List)
				userGroup.PUT("/:id/role", userHandler.UpdateRole)
			}

			// 应用登记（仅管理员）
			appGroup := authed.Group("/apps")
			appGroup.Use(middleware.RequireRoles(authzService, constants.RoleAdmin))
			{
				appGroup.POST("", appHandler.Create)
				appGroup.GET("", appHandler.List)
			}
		}

		// API Key守卫的路由
		gatewayGroup := v1.Group("/gateway")
		gatewayGroup.Use(middleware.APIKeyMiddleware(credentialService, &cfg.Auth.APIKey))
		{
			gatewayGroup.GET("/whoami", gatewayHandler.Whoami)
		}
	}

	return r
}
