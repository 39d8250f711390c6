package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"petition-backend/internal/config"
	"petition-backend/internal/models"
	"petition-backend/internal/service"
)

type singleAdminStore struct {
	user *models.AdminUser
}

func (s *singleAdminStore) Create(ctx context.Context, user *models.AdminUser) error {
	s.user = user
	return nil
}

func (s *singleAdminStore) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, nil
}

func newLoginRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	store := &singleAdminStore{user: &models.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@example.org",
		PasswordHash: string(hashed),
	}}

	auth := service.NewAuthService(store, config.AuthConfig{
		JWTSecret: "login-test-secret",
		JWTExpiry: time.Hour,
	})

	router := gin.New()
	router.POST("/api/admin/login", NewAuthHandler(auth).Login)

	return router
}

func postLogin(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestLoginReturnsToken(t *testing.T) {
	router := newLoginRouter(t)

	w := postLogin(t, router, map[string]string{
		"email":    "admin@example.org",
		"password": "hunter2",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("expected success, got %v", body)
	}
	if token, _ := body["token"].(string); token == "" {
		t.Error("expected a token in the response")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := newLoginRouter(t)

	w := postLogin(t, router, map[string]string{
		"email":    "admin@example.org",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	router := newLoginRouter(t)

	w := postLogin(t, router, map[string]string{"email": "admin@example.org"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
