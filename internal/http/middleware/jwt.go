package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// UserFinder loads the user a token was issued to.
type UserFinder interface {
	GetUserByID(ctx context.Context, id int) (*model.User, error)
}

type tokenClaims struct {
	UserID   int
	TenantID int
}

// signs a token embedding the user in "sub" and the user's tenant in "tenant".
func GenerateJWT(userID, tenantID int, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    userID,
		"tenant": tenantID,
		"exp":    time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// verifies the JWT and returns its claims (unexported, only used internally).
func parseToken(tokenString, secret string) (tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return tokenClaims{}, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return tokenClaims{}, errors.New("invalid sub claim")
	}
	tenant, ok := claims["tenant"].(float64)
	if !ok {
		return tokenClaims{}, errors.New("invalid tenant claim")
	}
	return tokenClaims{UserID: int(sub), TenantID: int(tenant)}, nil
}

// checks "Authorization: Bearer <token>", verifies it, loads the user, and sets "currentUser" in context.
// A token whose tenant no longer matches the user's is refused.
func JWTMiddleware(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth header"})
			return
		}

		claims, err := parseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil || user.TenantID != claims.TenantID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.Set("currentUser", user)
		c.Next()
	}
}
