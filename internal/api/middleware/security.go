package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 接口只返回 JSON 与文件下载，不加载任何脚本或样式
var securityHeaders = [][2]string{
	{"X-Frame-Options", "DENY"},
	{"X-Content-Type-Options", "nosniff"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Cross-Origin-Resource-Policy", "same-site"},
}

// SecurityHeaders 安全 HTTP 头中间件
// 写接口的响应禁止缓存；读接口（网格、导出）交由客户端自行缓存
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			h.Set("Cache-Control", "no-store")
		}

		c.Next()
	}
}
