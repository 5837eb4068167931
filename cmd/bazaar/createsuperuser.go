package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/bazaar-dev/bazaar/internal/apperr"
	"github.com/bazaar-dev/bazaar/internal/auth"
	"github.com/bazaar-dev/bazaar/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCreateSuperuserCommand(v *viper.Viper) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff user with every permission",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)

			if username == "" {
				return errors.New("--username is required")
			}

			if password == "" {
				password = v.GetString("superuser_password")
			}

			if !auth.ValidPassword(password) {
				return errors.New("password must contain at least 8 characters (--password or SUPERUSER_PASSWORD)")
			}

			if _, err := connect(v); err != nil {
				return err
			}
			defer db.Close()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			user := models.User{
				Username:     username,
				Email:        strings.ToLower(strings.TrimSpace(email)),
				PasswordHash: hash,
				IsStaff:      true,
				IsSuperuser:  true,
				IsActive:     true,
			}

			if err := db.DB.WithContext(cmd.Context()).Create(&user).Error; err != nil {
				if err = apperr.Translate(err); errors.Is(err, apperr.ErrDuplicate) {
					return fmt.Errorf("user %q already exists", username)
				}
				return err
			}

			cmd.Printf("Superuser %s created (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (env SUPERUSER_PASSWORD)")

	return cmd
}
