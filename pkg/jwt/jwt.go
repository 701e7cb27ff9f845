package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/krishpatel1827/EduSync/config"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

const (
	issuer    = "edusync"
	clockSkew = 30 * time.Second

	// RoleAdmin 唯一的写权限角色，令牌由命令行 `edusync token` 签发
	RoleAdmin = "admin"
)

// Claims 管理端令牌声明；操作人标识使用标准 sub 字段
type Claims struct {
	Role string `json:"role"`
	jwtv5.RegisteredClaims
}

// Manager 负责签发与校验 HS256 令牌
type Manager struct {
	secret     []byte
	defaultTTL time.Duration
	parser     *jwtv5.Parser
}

func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		defaultTTL: cfg.AccessTokenTTL,
		parser: jwtv5.NewParser(
			jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
			jwtv5.WithIssuer(issuer),
			jwtv5.WithExpirationRequired(),
			jwtv5.WithLeeway(clockSkew),
		),
	}
}

// GenerateToken 签发令牌；ttl<=0 时使用 auth.access_token_ttl
func (m *Manager) GenerateToken(subject, role string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseToken 校验签名、签发方与有效期，只返回 ErrTokenExpired 或 ErrTokenInvalid
func (m *Manager) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(raw, claims, func(*jwtv5.Token) (interface{}, error) {
		return m.secret, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwtv5.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, ErrTokenInvalid
	}
}
