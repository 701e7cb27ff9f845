package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/krishpatel1827/EduSync/config"
	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Timetable TimetableService
	Entry     EntryService
	Catalog   CatalogService
	Export    ExportService
}

// GridCache 课表网格缓存（由 pkg/redis.Client 实现）
type GridCache interface {
	GetGrid(ctx context.Context, timetableID string) (*dto.GridResponse, bool, error)
	SetGrid(ctx context.Context, timetableID string, grid *dto.GridResponse) error
	InvalidateGrid(ctx context.Context, timetableID string) error
	InvalidateAllGrids(ctx context.Context) error
}

// NewService 创建 Service 聚合；cache 可为 nil（不启用缓存）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache GridCache,
	logger *zap.Logger,
) *Service {
	gc := newGridCacheGuard(cache, logger)
	timetable := NewTimetableService(&cfg.Timetable, repo, gc, logger)
	return &Service{
		Timetable: timetable,
		Entry:     NewEntryService(repo, gc, logger),
		Catalog:   NewCatalogService(repo, gc, logger),
		Export:    NewExportService(&cfg.Timetable, timetable, logger),
	}
}

// ── 缓存降级封装 ──
//
// 缓存不可用或出错时仅记录日志，读路径回源数据库，写路径不受影响。

type gridCacheGuard struct {
	cache  GridCache
	logger *zap.Logger
}

func newGridCacheGuard(cache GridCache, logger *zap.Logger) *gridCacheGuard {
	return &gridCacheGuard{cache: cache, logger: logger}
}

func (g *gridCacheGuard) get(ctx context.Context, timetableID string) (*dto.GridResponse, bool) {
	if g == nil || g.cache == nil {
		return nil, false
	}
	grid, ok, err := g.cache.GetGrid(ctx, timetableID)
	if err != nil {
		g.logger.Warn("读取网格缓存失败", zap.String("timetable_id", timetableID), zap.Error(err))
		return nil, false
	}
	return grid, ok
}

func (g *gridCacheGuard) set(ctx context.Context, timetableID string, grid *dto.GridResponse) {
	if g == nil || g.cache == nil {
		return
	}
	if err := g.cache.SetGrid(ctx, timetableID, grid); err != nil {
		g.logger.Warn("写入网格缓存失败", zap.String("timetable_id", timetableID), zap.Error(err))
	}
}

func (g *gridCacheGuard) invalidate(ctx context.Context, timetableID string) {
	if g == nil || g.cache == nil {
		return
	}
	if err := g.cache.InvalidateGrid(ctx, timetableID); err != nil {
		g.logger.Warn("清除网格缓存失败", zap.String("timetable_id", timetableID), zap.Error(err))
	}
}

func (g *gridCacheGuard) invalidateAll(ctx context.Context) {
	if g == nil || g.cache == nil {
		return
	}
	if err := g.cache.InvalidateAllGrids(ctx); err != nil {
		g.logger.Warn("清除全部网格缓存失败", zap.Error(err))
	}
}

// formatTime 统一响应中的时间格式
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
