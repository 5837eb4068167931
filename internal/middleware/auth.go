package middleware

import (
	"net/http"
	"strings"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/auth"
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/bazaar-dev/bazaar/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsSuperuser bool   `json:"is_superuser"`
}

// tokenFromRequest reads a bearer token from the Authorization header, falling
// back to the token cookie set at login. Browsers cannot add headers to
// WebSocket handshakes, so the cookie is the only option there.
func tokenFromRequest(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}

		return parts[1], true
	}

	cookie, err := ctx.Cookie("token")

	if err != nil || cookie == "" {
		return "", false
	}

	return cookie, true
}

// StaffRequired admits active staff users only.
func StaffRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := tokenFromRequest(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, err := auth.UserIDFromToken(token)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		var user models.User

		if err := db.DB.WithContext(ctx.Request.Context()).Where("id = ?", userID).First(&user).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if !user.IsActive || !user.IsStaff {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			IsSuperuser: user.IsSuperuser,
		})
		ctx.Next()
	}
}
