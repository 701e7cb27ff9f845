package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krishpatel1827/EduSync/pkg/response"
)

// RateLimiter 固定窗口计数器（由 pkg/redis.Client 实现）
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 管理端写接口限流
// 注册在 JWTAuth 之后时按令牌 subject 计数，否则按客户端 IP；计数维度含方法与路由模板。
// limiter 为 nil、limit<=0 或 Redis 出错时放行
func RateLimit(limiter RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(window.Round(time.Second) / time.Second))

	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		allowed, err := limiter.CheckRateLimit(c.Request.Context(), rateLimitKey(c), limit, window)
		if err != nil || allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", retryAfter)
		response.TooManyRequests(c, 10004, "请求过于频繁，请稍后再试")
		c.Abort()
	}
}

func rateLimitKey(c *gin.Context) string {
	who := "ip:" + c.ClientIP()
	if subject := c.GetString(ContextKeySubject); subject != "" {
		who = "sub:" + subject
	}
	return who + ":" + c.Request.Method + ":" + c.FullPath()
}
