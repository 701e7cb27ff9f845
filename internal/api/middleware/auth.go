package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/krishpatel1827/EduSync/pkg/jwt"
	"github.com/krishpatel1827/EduSync/pkg/response"
)

const (
	ContextKeySubject = "subject"
	ContextKeyRole    = "role"
)

// bearerToken 提取 "Authorization: Bearer <token>"，scheme 不区分大小写
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// JWTAuth 校验管理端令牌并写入 subject/role
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}
		raw, ok := bearerToken(header)
		if !ok {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(raw)
		if err != nil {
			msg := "Token 无效"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token 已过期，请重新签发"
			}
			response.Unauthorized(c, 10002, msg)
			c.Abort()
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// RoleAuth 要求当前令牌角色属于 allowedRoles，须注册在 JWTAuth 之后
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextKeyRole)
		if role == "" {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}
		if _, ok := allowed[role]; !ok {
			response.Forbidden(c, 10003, "无权限访问")
			c.Abort()
			return
		}
		c.Next()
	}
}
