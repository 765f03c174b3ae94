package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/stores"
)

var (
	// seed-admin flags
	adminEmail    string
	adminPassword string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account if it does not exist",
	Long: `Create the admin account if it does not exist.

Credentials default to ADMIN_EMAIL and ADMIN_PASSWORD. Running it again is a
no-op; an existing student account with the same email is an error.

Examples:
  jobboard seed-admin
  jobboard seed-admin --email admin@campus.edu --password s3cret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		email, password := adminEmail, adminPassword
		if email == "" {
			email = e.cfg.Admin.Email
		}
		if password == "" {
			password = e.cfg.Admin.Password
		}
		if email == "" || password == "" {
			return errors.New("admin email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
		}

		tokens := auth.NewJWTService(e.cfg.Auth.JWTSecret, e.cfg.Auth.TokenTTL)
		svc := services.NewAuthService(stores.New(e.db), auth.BcryptHasher{}, tokens, e.log)
		created, err := svc.EnsureAdmin(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created\n", email)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", email)
		}
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email (default $ADMIN_EMAIL)")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (default $ADMIN_PASSWORD)")
	rootCmd.AddCommand(seedAdminCmd)
}
