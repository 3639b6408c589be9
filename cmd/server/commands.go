package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	authmodels "intake/internal/auth/models"
	"intake/internal/platform/logger"
	"intake/internal/platform/postgres"
	id "intake/pkg/domain"
	"intake/pkg/email"
)

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create missing tables and indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := requireDatabase(cfg); err != nil {
				return err
			}
			db, err := postgres.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := postgres.ApplySchema(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	})
	return cmd
}

// inviteCmd provisions an inactive principal and sends the register link
// that lets them choose a password.
func inviteCmd() *cobra.Command {
	var address, role, firstName, lastName string
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Create a user and email them a register link",
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr := email.Normalize(address)
			if addr == "" {
				return fmt.Errorf("--email is required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := requireDatabase(cfg); err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel)
			ctx := cmd.Context()

			d, err := openDeps(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer d.Close()

			if firstName == "" && lastName == "" {
				firstName, lastName = email.NamesFromAddress(addr)
			}
			now := time.Now().UTC()
			u := &authmodels.User{
				ID:        id.NewUserID(),
				Email:     addr,
				Role:      role,
				FirstName: firstName,
				LastName:  lastName,
				IsActive:  false,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := d.users.Save(ctx, u); err != nil {
				return fmt.Errorf("save user: %w", err)
			}
			if err := newAuthService(cfg, d, log).SendRegisterLink(ctx, u.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "invited %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "email", "", "email address of the new user")
	cmd.Flags().StringVar(&role, "role", "clinician", "role carried in access tokens")
	cmd.Flags().StringVar(&firstName, "first-name", "", "given name, guessed from the email when empty")
	cmd.Flags().StringVar(&lastName, "last-name", "", "family name, guessed from the email when empty")
	return cmd
}
