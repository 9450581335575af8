package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bistrobuzz/bistro/app/repositories"
	"github.com/bistrobuzz/bistro/config"
	"github.com/bistrobuzz/bistro/pkg/auth"
	"github.com/bistrobuzz/bistro/pkg/database"
	"github.com/bistrobuzz/bistro/pkg/rbac"
	"github.com/bistrobuzz/bistro/pkg/validate"
)

type emailFlag struct {
	Email string `json:"email" validate:"required,email"`
}

func (f emailFlag) check() error {
	if errs := validate.Struct(f); validate.HasErrors(errs) {
		return fmt.Errorf("--email: %s", errs["email"])
	}
	return nil
}

var tokenEmail emailFlag

// bistro token:issue --email a@b.co
var tokenIssueCmd = &cobra.Command{
	Use:   "token:issue",
	Short: "Print a bearer token for an email",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tokenEmail.check(); err != nil {
			return err
		}
		if err := config.Load(); err != nil {
			return err
		}

		token, err := auth.NewTokenService(config.TokenSecret()).Issue(tokenEmail.Email)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var promoteEmail emailFlag

// bistro user:promote --email a@b.co
var userPromoteCmd = &cobra.Command{
	Use:   "user:promote",
	Short: "Grant the admin role to an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := promoteEmail.check(); err != nil {
			return err
		}
		return withDB(cmd, func(ctx context.Context, store *database.Store) error {
			res, err := repositories.NewUserRepository(store.DB).SetRoleByEmail(ctx, promoteEmail.Email, rbac.Admin)
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				return fmt.Errorf("no user with email %q", promoteEmail.Email)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin\n", promoteEmail.Email)
			return nil
		})
	},
}

func init() {
	tokenIssueCmd.Flags().StringVar(&tokenEmail.Email, "email", "", "email to sign")
	userPromoteCmd.Flags().StringVar(&promoteEmail.Email, "email", "", "email of the user to promote")
}
