package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/models"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/repo"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/respond"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{
		Repo:      gormRepo,
		JWTSecret: []byte("test-jwt-secret"),
		TokenTTL:  24 * time.Hour,
	}
	catalogSvc := &service.CatalogService{Repo: gormRepo}

	e := echo.New()
	e.HTTPErrorHandler = respond.ErrorHandler
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		ProductHandler: &ProductHTTP{Svc: catalogSvc},
	})

	return &testEnv{T: t, E: e, DB: db}
}

// doJSON runs a request through the full router, middleware included.
func (env *testEnv) doJSON(method, path string, payload any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(env.T, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder) respond.Envelope {
	env.T.Helper()
	var envl respond.Envelope
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &envl))
	return envl
}

// register+login a user and return a usable bearer token.
func (env *testEnv) login(t *testing.T) string {
	t.Helper()

	payload := map[string]string{"name": "John", "email": "john@example.com", "password": "Secret123"}
	rec := env.doJSON(http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "john@example.com", "password": "Secret123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func (env *testEnv) seedProduct(t *testing.T, name string, price float64) models.Product {
	t.Helper()
	prod := models.Product{Name: name, Price: price, Category: "electronics"}
	require.NoError(t, env.DB.Create(&prod).Error)
	return prod
}
