// Package service provides authentication for staff accounts: credential
// verification and access token issuance.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"zumarlaw_backend/internal/auth/repository"
	"zumarlaw_backend/platform/apperr"
	"zumarlaw_backend/platform/config"
	"zumarlaw_backend/platform/logger"
)

const msgInvalidCredentials = "invalid email or password"

// UserInfo is the authenticated user's public profile.
type UserInfo struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// LoginResult carries the issued token and the user it belongs to.
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        UserInfo  `json:"user"`
}

// Service provides authentication business logic.
type Service struct {
	repo *repository.Repo
	cfg  config.AuthServiceConfig
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new auth service.
func New(repo *repository.Repo, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log, now: time.Now}
}

// Login verifies credentials and issues an access token. Lookup and bcrypt
// failures return the same error so responses do not reveal which emails
// exist.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.AuthEvent("login_failed", email, false, "unknown email")
			return LoginResult{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.AuthEvent("login_failed", email, false, "password mismatch")
		return LoginResult{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	token, expiresAt, err := s.issueAccessToken(user)
	if err != nil {
		return LoginResult{}, err
	}

	s.log.AuthEvent("login", email, true, "")
	return LoginResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        toUserInfo(user),
	}, nil
}

// Me returns the profile for an authenticated user ID.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserInfo{}, apperr.NotFound("user not found")
		}
		return UserInfo{}, err
	}
	return toUserInfo(user), nil
}

func (s *Service) issueAccessToken(user repository.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.GetAccessTokenTTL())

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"type":  "access",
		"roles": user.Roles,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

func toUserInfo(user repository.User) UserInfo {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserInfo{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Roles: roles,
	}
}
