package handlers

import (
	"strings"

	"github.com/bazaar-dev/bazaar/internal/admin"
	"github.com/bazaar-dev/bazaar/internal/apperr"
	"github.com/bazaar-dev/bazaar/internal/auth"
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserRequest struct {
	Username    string `json:"username" binding:"required,max=150"`
	Email       string `json:"email" binding:"omitempty,email,max=254"`
	Password    string `json:"password"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    *bool  `json:"is_active"`
}

func (s *Server) UserResource() *admin.Resource[models.User, UserRequest] {
	return &admin.Resource[models.User, UserRequest]{
		Name:  "users",
		Order: "username",
		Apply: func(_ *gorm.DB, in *UserRequest, m *models.User) error {
			m.Username = strings.TrimSpace(in.Username)
			m.Email = strings.ToLower(strings.TrimSpace(in.Email))
			m.IsStaff = in.IsStaff
			m.IsSuperuser = in.IsSuperuser

			if in.IsActive != nil {
				m.IsActive = *in.IsActive
			} else if m.ID == 0 {
				m.IsActive = true
			}

			// The password is only required when creating; leaving it empty
			// on update keeps the current one.
			if in.Password == "" {
				if m.ID == 0 {
					return apperr.Invalid("password", "This field is required.")
				}
				return nil
			}

			if !auth.ValidPassword(in.Password) {
				return apperr.Invalid("password", "This password is too short. It must contain at least 8 characters.")
			}

			hash, err := auth.HashPassword(in.Password)
			if err != nil {
				return err
			}
			m.PasswordHash = hash

			return nil
		},
		View: func(_ *gin.Context, m *models.User) any {
			return SerializeUser(m)
		},
		Events: s.Hub,
	}
}
