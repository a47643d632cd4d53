package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextAdminID is the gin context key holding the authenticated
// admin's id after Protect has run.
const ContextAdminID = "adminID"

type Claims struct {
	AdminID uint `json:"adminId"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}
	return []byte(secret), nil
}

// GenerateToken signs a 7-day HS256 token for the admin.
func GenerateToken(adminID uint) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}
	claims := Claims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Protect requires a valid Bearer token and stores the admin id on the
// context for downstream handlers.
func Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		secret, err := jwtSecret()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Auth not configured"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || claims.AdminID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token claims"})
			c.Abort()
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Next()
	}
}

// AdminID pulls the authenticated admin id set by Protect.
func AdminID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextAdminID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
