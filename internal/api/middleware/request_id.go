package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/krishpatel1827/EduSync/pkg/response"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDMaxLen = 64
)

// RequestID 沿用上游传入的 X-Request-ID，缺失或不合法时生成 UUID；
// 结果写入上下文（错误响应与请求日志使用）并回写响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Set(response.ContextKeyRequestID, rid)
		c.Header(requestIDHeader, rid)
		c.Next()
	}
}

// validRequestID 只接受可打印 ASCII，避免日志注入
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > requestIDMaxLen {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] < 0x21 || rid[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID 读取当前请求的追踪 ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(response.ContextKeyRequestID)
}
