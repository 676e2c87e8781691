package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"horizon/internal/ai"
	"horizon/internal/config"
	"horizon/internal/faq"
	"horizon/internal/handler"
	authHandler "horizon/internal/handler/auth"
	"horizon/internal/pkg/cache"
	"horizon/internal/pkg/jwt"
	"horizon/internal/pkg/mongodb"
	"horizon/internal/repository"
	authRepo "horizon/internal/repository/auth"
	"horizon/internal/server/middleware"
	"horizon/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	mongo    *mongodb.Client
	redis    *cache.RedisCache
	aiClient *ai.Client
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 初始化 MongoDB (可选)
	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			// 创建索引
			if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 初始化 AI 客户端 (可选)
	// 失败时问答退化为 FAQ + 兜底应答
	var aiClient *ai.Client
	if cfg.AI.APIKey != "" {
		client, err := ai.NewClient(context.Background(), &cfg.AI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize AI client, continuing without it")
		} else {
			aiClient = client
			log.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("initialized AI client")
		}
	}

	srv := &Server{
		cfg:      cfg,
		engine:   engine,
		mongo:    mongoClient,
		redis:    redisCache,
		aiClient: aiClient,
	}

	// 设置路由
	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 问答解析服务（核心，总是可用）
	var completer service.Completer
	if s.aiClient != nil {
		completer = s.aiClient
	}
	resolverSvc := service.NewResolverService(faq.NewTable(), completer, s.cfg.AI.Options.MaxTokens)

	// 对话持久化服务（依赖MongoDB）
	var convSvc *service.ConversationService
	if s.mongo != nil {
		convRepo := repository.NewConversationRepo(s.mongo.Database())
		convSvc = service.NewConversationService(convRepo, s.redis)
	}

	jwtUtil := jwt.NewJWT(s.jwtSecret(), s.accessTokenExpiry())

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		// 认证接口（公开）
		if s.mongo != nil {
			userRepo := authRepo.NewUserRepo(s.mongo.Database())
			refreshTokenRepo := authRepo.NewRefreshTokenRepo(s.mongo.Database())

			authSvc := service.NewAuthService(
				userRepo,
				refreshTokenRepo,
				s.jwtSecret(),
				s.accessTokenExpiry(),
				s.refreshTokenExpiry(),
			)
			authHdl := authHandler.NewHandler(authSvc)

			v1.POST("/auth/register", authHdl.Register)
			v1.POST("/auth/login", authHdl.Login)
			v1.POST("/auth/refresh", authHdl.Refresh)
			v1.POST("/auth/logout", authHdl.Logout)
			v1.GET("/auth/me", authHdl.GetMe)
		} else {
			log.Warn().Msg("MongoDB not configured, auth endpoints disabled")
		}

		// Chat 接口
		// 匿名可用，登录用户的对话会持久化
		chatHdl := handler.NewChatHandler(resolverSvc, convSvc)
		v1.POST("/chat", middleware.OptionalAuth(jwtUtil), chatHdl.Chat)

		// Conversation 接口（需要认证和MongoDB）
		if convSvc != nil {
			convHdl := handler.NewConversationHandler(convSvc)

			conversations := v1.Group("/conversations")
			conversations.Use(middleware.Auth(jwtUtil))
			{
				conversations.GET("", convHdl.List)
				conversations.POST("/:id/rename", convHdl.Rename)
				conversations.POST("/:id/archive", convHdl.Archive)
				conversations.DELETE("/:id", convHdl.Delete)
			}
		} else {
			log.Warn().Msg("MongoDB not configured, conversation endpoints disabled")
		}

		// 参考资料接口（公开）
		refHdl := handler.NewReferenceHandler(service.NewReferenceService())
		v1.GET("/references", refHdl.List)
	}
}

// jwtSecret 获取JWT密钥，未配置时使用默认值
func (s *Server) jwtSecret() string {
	if s.cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
		return "default-secret-key-change-in-production"
	}
	return s.cfg.Auth.JWTSecret
}

// accessTokenExpiry 获取Access Token过期时间
func (s *Server) accessTokenExpiry() time.Duration {
	if s.cfg.Auth.AccessTokenExpiry == 0 {
		return 24 * time.Hour
	}
	return s.cfg.Auth.AccessTokenExpiry
}

// refreshTokenExpiry 获取Refresh Token过期时间
func (s *Server) refreshTokenExpiry() time.Duration {
	if s.cfg.Auth.RefreshTokenExpiry == 0 {
		return 7 * 24 * time.Hour
	}
	return s.cfg.Auth.RefreshTokenExpiry
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		// 关闭连接
		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}
		if s.aiClient != nil {
			if err := s.aiClient.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close AI client")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
