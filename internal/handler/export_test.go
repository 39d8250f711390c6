package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"petition-backend/internal/config"
	"petition-backend/internal/middleware"
	"petition-backend/internal/models"
	"petition-backend/internal/service"
)

type stubAdminStore struct{}

func (stubAdminStore) Create(ctx context.Context, user *models.AdminUser) error {
	return nil
}

func (stubAdminStore) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return nil, nil
}

const testJWTSecret = "export-test-secret"

func newExportRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	auth := service.NewAuthService(stubAdminStore{}, config.AuthConfig{
		JWTSecret: testJWTSecret,
		JWTExpiry: time.Hour,
	})

	router.GET("/api/export.xlsx", middleware.RequireAdmin(auth), NewExportHandler(store).Export)

	return router
}

func exportToken(t *testing.T, admin bool) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": "someone",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if admin {
		claims["admin"] = true
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatal(err)
	}

	return signed
}

func getExport(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/export.xlsx", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestExportRequiresToken(t *testing.T) {
	router := newExportRouter(&fakeStore{})

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"not a bearer header", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := getExport(router, tt.authorization); w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestExportRejectsNonAdmin(t *testing.T) {
	store := &fakeStore{}
	store.records = append(store.records, &models.SignatureRecord{
		Nom: "Anna", Cognom1: "Puig", TipusID: "12345678Z",
	})
	router := newExportRouter(store)

	w := getExport(router, "Bearer "+exportToken(t, false))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "Anna") || strings.Contains(w.Body.String(), "12345678Z") {
		t.Fatal("authorization failure must not leak record data")
	}
}

func TestExportStreamsWorkbookToAdmin(t *testing.T) {
	store := &fakeStore{}
	store.records = append(store.records, &models.SignatureRecord{
		Nom:           "Anna",
		Cognom1:       "Puig",
		DataNaixement: "19900101",
		TipusID:       "12345678Z",
		NumID:         "12345678",
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	router := newExportRouter(store)

	w := getExport(router, "Bearer "+exportToken(t, true))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if got := w.Header().Get("Content-Type"); got != xlsxContentType {
		t.Errorf("unexpected content type %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Errorf("expected attachment disposition, got %q", got)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("body does not look like an xlsx archive")
	}
}
