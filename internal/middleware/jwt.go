package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"personnel_admin/internal/config"
	"personnel_admin/internal/models"
	"personnel_admin/internal/operations"
)

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// GenerateToken signs a token carrying only the user id. Role and
// permissions are re-read from the database on every request so a role
// change takes effect immediately.
func GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses a signed token and returns the user id it carries.
func ValidateToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return uint(id), nil
}

// authenticate resolves the principal from the bearer token and loads the
// user (with role and permissions) fresh from the store. Missing, invalid
// or disabled principals abort the request; the caller gets nil and must
// return without running anything further. Never advances the chain, so
// guards can run more checks before the handler body starts.
func authenticate(c *gin.Context) *models.User {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return nil
	}

	userID, err := ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return nil
	}

	user, err := operations.GetUser(config.GetDB(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve principal"})
		return nil
	}
	if user == nil || !user.Enabled {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found or disabled"})
		return nil
	}

	c.Set("user_id", user.ID)
	c.Set("current_user", user)
	return user
}

// RequireAuth rejects unauthenticated requests before the handler runs.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c) == nil {
			return
		}
		c.Next()
	}
}

// CurrentUser returns the principal stored by RequireAuth, or nil outside a
// guarded handler.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get("current_user")
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
