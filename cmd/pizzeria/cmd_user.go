package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/internal/kernel"
	"github.com/shashiranjanraj/pizzeria/pkg/cache"
)

func newUserCreateCmd() *cobra.Command {
	var in services.SignupInput

	cmd := &cobra.Command{
		Use:   "user:create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(db *gorm.DB) error {
				k := kernel.New(db, cache.New(nil), nil)
				user, err := k.Auth.Signup(cmd.Context(), in)
				if err != nil {
					if d := services.Detail(err); d != "" {
						return fmt.Errorf("user:create: %s", d)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d, staff %t)\n", user.Username, user.ID, user.IsStaff)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "login name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "plain-text password")
	cmd.Flags().BoolVar(&in.IsStaff, "staff", false, "grant the staff role")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newTokenIssueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token:issue <username>",
		Short: "Print an access and refresh token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				k := kernel.New(db, cache.New(nil), nil)
				pair, err := k.Auth.IssueFor(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(pair)
			})
		},
	}
}
