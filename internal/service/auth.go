package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/store"
)

// ErrInvalidToken is returned when a bearer token fails verification.
var ErrInvalidToken = errors.New("invalid token")

// AuthService issues and verifies access tokens. This is demo-grade
// authentication: any email logs in, and the account is created on first
// use.
type AuthService struct {
	repo   store.Repository
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewAuth(repo store.Repository, secret []byte, ttl time.Duration, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		repo:   repo,
		secret: secret,
		ttl:    ttl,
		logger: log,
		now:    time.Now,
	}
}

// Login finds or creates the account for email and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, name string) (string, *model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if user == nil {
		user = &model.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			CreatedAt: s.now().UTC(),
		}
		if err := s.repo.UpsertUser(ctx, user); err != nil {
			return "", nil, fmt.Errorf("create user: %w", err)
		}
		s.logger.Info("user registered", zap.String("user_id", user.ID))
	}

	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// VerifyToken validates a bearer token and returns the user ID it carries.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// GetUser returns an account by ID, or nil when it does not exist.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetUser(ctx, id)
}
