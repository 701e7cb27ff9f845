package jwt

import (
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/krishpatel1827/EduSync/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 15 * time.Minute,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("registrar", RoleAdmin, 0)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.Subject != "registrar" {
		t.Errorf("期望 Subject=registrar，实际=%s", claims.Subject)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.Issuer != "edusync" {
		t.Errorf("期望 Issuer=edusync，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 14*time.Minute || ttl > 15*time.Minute {
		t.Errorf("默认有效期应约为 15 分钟，实际=%v", ttl)
	}
}

func TestGenerateToken_CustomTTL(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("ops", RoleAdmin, 2*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if time.Until(claims.ExpiresAt.Time) <= time.Hour {
		t.Error("自定义有效期未生效")
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := newTestManager()

	// ttl<=0 使用默认值，因此手工签发过期令牌
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    issuer,
		},
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager(&config.AuthConfig{JWTSecret: "another-secret-key-0123456789", AccessTokenTTL: time.Minute})

	token, err := other.GenerateToken("ops", RoleAdmin, 0)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	m := newTestManager()
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "someone-else",
		},
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := newTestManager()
	if _, err := m.ParseToken("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_MissingExpiry(t *testing.T) {
	m := newTestManager()
	claims := Claims{
		Role:             RoleAdmin,
		RegisteredClaims: jwtv5.RegisteredClaims{Issuer: issuer, Subject: "ops"},
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("缺少 exp 的令牌应被拒绝，实际: %v", err)
	}
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager()
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS512, claims).SignedString(m.secret)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("非 HS256 令牌应被拒绝，实际: %v", err)
	}
}
