package cli

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/krishpatel1827/EduSync/config"
	"github.com/krishpatel1827/EduSync/internal/repository"
	"github.com/krishpatel1827/EduSync/internal/service"
	"github.com/krishpatel1827/EduSync/pkg/database"
	applogger "github.com/krishpatel1827/EduSync/pkg/logger"
	"github.com/krishpatel1827/EduSync/pkg/redis"
)

// app 命令行运行所需的依赖
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	svc    *service.Service
	close  func()
}

// loadConfig 加载配置并初始化控制台日志
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logCfg := cfg.Log
	logCfg.Format = "console"
	logCfg.Output = "stderr"
	if verbose {
		logCfg.Level = "debug"
	} else {
		logCfg.Level = "warn"
	}
	logger, err := applogger.NewLogger(&logCfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openDB 连接数据库并返回 gorm 与底层 sql.DB
func openDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, *sql.DB, error) {
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return db, sqlDB, nil
}

// openApp 连接数据库、执行迁移并组装 Service
// Redis 可用时一并连接，命令行的写操作同样会失效服务端的网格缓存
func openApp() (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, sqlDB, err := openDB(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	var cache service.GridCache
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Debug("Redis 不可用，跳过网格缓存", zap.Error(err))
		rdb = nil
	} else {
		cache = rdb
	}

	repo := repository.NewRepository(db)
	return &app{
		cfg:    cfg,
		logger: logger,
		svc:    service.NewService(cfg, repo, cache, logger),
		close: func() {
			if rdb != nil {
				rdb.Close()
			}
			sqlDB.Close()
			logger.Sync()
		},
	}, nil
}
