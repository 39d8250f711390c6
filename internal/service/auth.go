package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"petition-backend/internal/config"
	"petition-backend/internal/models"
)

// AdminStore is the persistence capability the auth service needs.
type AdminStore interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

type AuthService struct {
	store     AdminStore
	jwtSecret []byte
	jwtExpiry time.Duration
	adminUIDs map[string]bool
}

func NewAuthService(store AdminStore, cfg config.AuthConfig) *AuthService {
	uids := make(map[string]bool, len(cfg.AdminUIDs))
	for _, uid := range cfg.AdminUIDs {
		uids[uid] = true
	}

	return &AuthService{
		store:     store,
		jwtSecret: []byte(cfg.JWTSecret),
		jwtExpiry: cfg.JWTExpiry,
		adminUIDs: uids,
	}
}

// Login authenticates an admin and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"admin": true,
		"exp":   time.Now().Add(s.jwtExpiry).Unix(),
		"iat":   time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// Authorize validates a bearer token and confirms the admin capability: an
// explicit admin claim or a subject on the configured allow-list. The two
// failure modes stay distinct so callers can answer 401 vs 403.
func (s *AuthService) Authorize(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if isAdmin, _ := claims["admin"].(bool); isAdmin {
		return claims, nil
	}

	if sub, _ := claims["sub"].(string); sub != "" && s.adminUIDs[sub] {
		return claims, nil
	}

	return nil, ErrNotAdmin
}

// EnsureAdmin seeds the configured admin account on startup if it is missing.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := s.store.Create(ctx, user); err != nil {
		return err
	}

	log.Printf("Seeded admin account %s", email)

	return nil
}
