// Package server 对外HTTP服务
// 说明：提供ID铸造、解析、监控指标等接口；核心生成逻辑全部在pkg/idgen中，
// 本包只做传输层的包装
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "katydid-common-core/docs" // swagger文档
	"katydid-common-core/pkg/idgen/core"
)

// Options 服务选项
type Options struct {
	// Addr 监听地址
	Addr string

	// Mode gin运行模式（debug/release/test）
	Mode string

	// JWTSecret JWT签发/校验密钥，为空时鉴权关闭
	JWTSecret string

	// AdminTokenHash 管理令牌bcrypt哈希，为空时令牌接口关闭
	AdminTokenHash string

	// Generator ID生成器，必填
	Generator core.IGenerator

	// Logger 日志器
	Logger *zap.Logger
}

// Server HTTP服务
type Server struct {
	addr           string
	jwtSecret      string
	adminTokenHash string
	generator      core.IGenerator
	logger         *zap.Logger
	engine         *gin.Engine
	httpServer     *http.Server
}

// New 创建HTTP服务
func New(opts Options) (*Server, error) {
	if opts.Generator == nil {
		return nil, core.ErrNilConfig
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	s := &Server{
		addr:           opts.Addr,
		jwtSecret:      opts.JWTSecret,
		adminTokenHash: opts.AdminTokenHash,
		generator:      opts.Generator,
		logger:         opts.Logger,
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:    opts.Addr,
		Handler: s.engine,
	}

	return s, nil
}

// registerRoutes 注册路由
func (s *Server) registerRoutes() {
	// 健康检查和文档
	s.engine.GET("/healthz", s.handleHealthz)
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api/v1")
	{
		// 鉴权
		api.POST("/auth/token", s.handleToken)

		// 铸造（需要鉴权）
		api.POST("/ids", s.authRequired(), s.handleMint)

		// 解析与监控（只读，公开）
		api.GET("/ids/:id", s.handleInspect)
		api.GET("/metrics", s.handleMetrics)
	}
}

// Engine 返回底层gin引擎（用于测试）
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run 启动服务并阻塞
func (s *Server) Run() error {
	s.logger.Info("HTTP服务启动", zap.String("addr", s.addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown 优雅停机
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP服务停机中")
	return s.httpServer.Shutdown(ctx)
}
