package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/krishpatel1827/EduSync/config"
	"github.com/krishpatel1827/EduSync/internal/dto"
)

// Client Redis 客户端封装
// 用于课表网格缓存与写接口限流
type Client struct {
	rdb     *goredis.Client
	gridTTL time.Duration
	logger  *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return NewFromRedis(rdb, cfg.GridTTL, logger), nil
}

// NewFromRedis 包装已有连接
func NewFromRedis(rdb *goredis.Client, gridTTL time.Duration, logger *zap.Logger) *Client {
	if gridTTL <= 0 {
		gridTTL = 10 * time.Minute
	}
	return &Client{rdb: rdb, gridTTL: gridTTL, logger: logger}
}

// ── 课表网格缓存 ──

const gridPrefix = "timetable:grid:"

func gridKey(timetableID string) string { return gridPrefix + timetableID }

// GetGrid 读取缓存网格；未命中时 ok=false
func (c *Client) GetGrid(ctx context.Context, timetableID string) (*dto.GridResponse, bool, error) {
	raw, err := c.rdb.Get(ctx, gridKey(timetableID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var grid dto.GridResponse
	if err := json.Unmarshal(raw, &grid); err != nil {
		// 缓存内容损坏，按未命中处理并清除
		c.logger.Warn("网格缓存解析失败，已丢弃", zap.String("timetable_id", timetableID), zap.Error(err))
		_ = c.rdb.Del(ctx, gridKey(timetableID)).Err()
		return nil, false, nil
	}
	return &grid, true, nil
}

// SetGrid 写入网格缓存
func (c *Client) SetGrid(ctx context.Context, timetableID string, grid *dto.GridResponse) error {
	raw, err := json.Marshal(grid)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, gridKey(timetableID), raw, c.gridTTL).Err()
}

// InvalidateGrid 删除单个版本的网格缓存
func (c *Client) InvalidateGrid(ctx context.Context, timetableID string) error {
	return c.rdb.Del(ctx, gridKey(timetableID)).Err()
}

// InvalidateAllGrids 删除所有版本的网格缓存（参考数据变更时使用）
func (c *Client) InvalidateAllGrids(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, gridPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// ── 限流 ──

const rateLimitPrefix = "ratelimit:"

// CheckRateLimit 固定窗口计数；返回 true 表示本次请求被放行
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	k := rateLimitPrefix + key
	n, err := c.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, k, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
