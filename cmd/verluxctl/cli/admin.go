package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/repository"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newAdminCreateCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var (
		email    string
		password string
		name     string
		role     string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an admin account",
		Example: `  verluxctl admin create --email ops@verluxstands.com --password 'long passphrase' --role SUPERADMIN`,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := newAdminUser(email, password, name, role)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			e, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := repository.NewUserRepository(e.db).Create(ctx, user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s account %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password, at least 8 characters (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "SUPERADMIN, ADMIN or EDITOR")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAdminUser(email, password, name, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address: %q", email)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	r := models.UserRole(strings.ToUpper(strings.TrimSpace(role)))
	switch r {
	case models.RoleSuperAdmin, models.RoleAdmin, models.RoleEditor:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(name),
		Role:         r,
		Active:       true,
	}, nil
}
