package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/admin"
	"github.com/bazaar-dev/bazaar/internal/auth"
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/bazaar-dev/bazaar/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const tokenMaxAge = 60 * 60 * 24 * 7

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func setTokenCookie(ctx *gin.Context, value string, maxAge int) {
	secure := ctx.Request.TLS != nil || ctx.GetHeader("X-Forwarded-Proto") == "https"

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func LoginUser(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		admin.RespondBindError(ctx, err)
		return
	}

	var user models.User

	err := db.DB.WithContext(ctx.Request.Context()).Where("username = ?", strings.TrimSpace(body.Username)).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, body.Password) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
		return
	}

	if !user.IsActive || !user.IsStaff {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Username)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setTokenCookie(ctx, token, tokenMaxAge)

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  SerializeUser(&user),
	})
}

func LogoutUser(ctx *gin.Context) {
	setTokenCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": currentUser})
}
