package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/krishpatel1827/EduSync/config"
	"github.com/krishpatel1827/EduSync/internal/api/handler"
	"github.com/krishpatel1827/EduSync/internal/api/middleware"
	"github.com/krishpatel1827/EduSync/internal/api/router"
	"github.com/krishpatel1827/EduSync/internal/repository"
	"github.com/krishpatel1827/EduSync/internal/service"
	"github.com/krishpatel1827/EduSync/pkg/database"
	"github.com/krishpatel1827/EduSync/pkg/jwt"
	applogger "github.com/krishpatel1827/EduSync/pkg/logger"
	"github.com/krishpatel1827/EduSync/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("EDUSYNC_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("服务异常退出", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("服务器已关闭")
}

// run 组装依赖并阻塞到 ctx 取消或 HTTP 服务异常
// 依赖顺序：DB → 迁移 → Redis（可选）→ Repository → Service → Handler → Router
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("EduSync 启动中",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// Redis 不可用时降级：网格直接查库，写接口不限流
	var (
		gridCache service.GridCache
		limiter   middleware.RateLimiter
	)
	if rdb, err := redis.NewClient(&cfg.Redis, logger); err != nil {
		logger.Warn("Redis 连接失败，网格缓存与限流将不可用", zap.Error(err))
	} else {
		defer rdb.Close()
		gridCache, limiter = rdb, rdb
	}

	svc := service.NewService(cfg, repository.NewRepository(db), gridCache, logger)
	engine := router.Setup(cfg, handler.NewHandler(svc), jwt.NewManager(&cfg.Auth), limiter, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP 服务器异常: %w", err)
	case <-ctx.Done():
	}

	logger.Info("收到关闭信号，开始优雅关闭")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务器关闭异常: %w", err)
	}
	return nil
}
