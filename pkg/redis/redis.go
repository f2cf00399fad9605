package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/artichane-debug/schiedule-1/config"
)

// Client Redis 客户端封装
// 当前用于日程缓存与速率限制；连接失败时上层以 nil 客户端降级运行
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
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
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 日程缓存 ──
//
// 缓存键携带单调递增的数据版本号；课程会议每次增删改后 BumpDataVersion，
// 旧版本键自然失效并由 TTL 回收，无需逐键删除。

const (
	agendaPrefix   = "agenda:"
	dataVersionKey = "agenda:data_version"
)

// DataVersion 读取当前数据版本号（键不存在时为 0）
func (c *Client) DataVersion(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, dataVersionKey).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	return v, err
}

// BumpDataVersion 递增数据版本号，使全部既有日程缓存失效
func (c *Client) BumpDataVersion(ctx context.Context) error {
	return c.rdb.Incr(ctx, dataVersionKey).Err()
}

// AgendaKey 构造带版本号的日程缓存键
func AgendaKey(version int64, suffix string) string {
	return fmt.Sprintf("%sv%d:%s", agendaPrefix, version, suffix)
}

// CacheGet 读取缓存值；不存在时 ok 为 false
func (c *Client) CacheGet(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// CacheSet 写入缓存值
func (c *Client) CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// ── 速率限制 ──

// CheckRateLimit 固定窗口计数限流：窗口内请求数超过 limit 时返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
