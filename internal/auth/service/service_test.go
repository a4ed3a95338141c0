package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"zumarlaw_backend/internal/auth/repository"
	"zumarlaw_backend/platform/logger"
)

type stubAuthConfig struct {
	secret string
	ttl    time.Duration
}

func (c stubAuthConfig) GetJWTAccessSecret() string       { return c.secret }
func (c stubAuthConfig) GetAccessTokenTTL() time.Duration { return c.ttl }

func TestIssueAccessToken(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	cfg := stubAuthConfig{secret: "test-secret", ttl: 12 * time.Hour}
	svc := New(nil, cfg, logger.New("test"))
	svc.now = func() time.Time { return now }

	user := repository.User{
		ID:    uuid.New(),
		Name:  "Admin",
		Email: "admin@example.com",
		Roles: []string{"admin"},
	}

	signed, expiresAt, err := svc.issueAccessToken(user)
	if err != nil {
		t.Fatalf("issueAccessToken: %v", err)
	}
	if want := now.Add(cfg.ttl); !expiresAt.Equal(want) {
		t.Errorf("expiresAt: got %v, want %v", expiresAt, want)
	}

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", token.Method)
		}
		return []byte(cfg.secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["sub"] != user.ID.String() {
		t.Errorf("sub: got %v, want %s", claims["sub"], user.ID)
	}
	if claims["type"] != "access" {
		t.Errorf("type: got %v, want access", claims["type"])
	}
	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 1 || roles[0] != "admin" {
		t.Errorf("roles: got %v, want [admin]", claims["roles"])
	}
	if exp, _ := claims["exp"].(float64); int64(exp) != now.Add(cfg.ttl).Unix() {
		t.Errorf("exp: got %v, want %d", claims["exp"], now.Add(cfg.ttl).Unix())
	}
}

func TestIssuedTokenRejectedWithWrongSecret(t *testing.T) {
	svc := New(nil, stubAuthConfig{secret: "right", ttl: time.Hour}, logger.New("test"))
	signed, _, err := svc.issueAccessToken(repository.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("issueAccessToken: %v", err)
	}

	_, err = jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	if err == nil {
		t.Error("token must not verify under a different secret")
	}
}
