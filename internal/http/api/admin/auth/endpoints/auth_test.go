package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/db/dbtest"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/middleware"
)

const secret = "test-secret"

func newAuthRouter(t *testing.T) (*gin.Engine, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := dbtest.NewMemStore()
	tenant, err := store.CreateTenant(ctx, "Acme")
	require.NoError(t, err)
	hash, err := middleware.HashPassword("s3cret")
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, tenant, "admin@acme.test", hash, nil)
	require.NoError(t, err)

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"}, AuthPublicModule(secret, time.Hour, store))
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin", Auth: true, SecretKey: secret, Users: store},
		AuthSessionModule(secret, time.Hour, store))
	return r, tenant
}

func login(r http.Handler, email, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginAndProfile(t *testing.T) {
	r, tenant := newAuthRouter(t)

	w := login(r, "admin@acme.test", "s3cret")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var token struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/auth/current_profile", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var profile struct {
		TenantID int    `json:"tenant_id"`
		Email    string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, tenant, profile.TenantID)
	assert.Equal(t, "admin@acme.test", profile.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized, login(r, "admin@acme.test", "wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, login(r, "nobody@acme.test", "s3cret").Code)
}
