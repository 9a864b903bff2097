package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

const secret = "test-secret"

type users map[int]*model.User

func (u users) GetUserByID(_ context.Context, id int) (*model.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, errors.New("not found")
}

func newRouter(finder UserFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", JWTMiddleware(secret, finder), func(c *gin.Context) {
		u, ok := GetCurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "tenant": u.TenantID})
	})
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	finder := users{1: {ID: 1, TenantID: 5}}
	r := newRouter(finder)

	token, err := GenerateJWT(1, 5, secret, time.Hour)
	require.NoError(t, err)
	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"tenant":5}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	tests := []struct {
		name   string
		header func() string
	}{
		{"missing header", func() string { return "" }},
		{"not bearer", func() string { return "Token " + token }},
		{"garbage", func() string { return "Bearer nope" }},
		{"wrong secret", func() string {
			tok, _ := GenerateJWT(1, 5, "other", time.Hour)
			return "Bearer " + tok
		}},
		{"expired", func() string {
			tok, _ := GenerateJWT(1, 5, secret, -time.Minute)
			return "Bearer " + tok
		}},
		{"unknown user", func() string {
			tok, _ := GenerateJWT(2, 5, secret, time.Hour)
			return "Bearer " + tok
		}},
		{"tenant mismatch", func() string {
			tok, _ := GenerateJWT(1, 6, secret, time.Hour)
			return "Bearer " + tok
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, get(r, tt.header()).Code)
		})
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newRouter(users{})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
}
