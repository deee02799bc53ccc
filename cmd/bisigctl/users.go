package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bisig_backend/internals/constants"
	authRepo "bisig_backend/internals/features/users/auth/repository"
	userModel "bisig_backend/internals/features/users/user/model"
	helperAuth "bisig_backend/internals/helpers/auth"
)

func createUserCmd() *cobra.Command {
	var name, email, password, role string
	var inactive bool
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account with any role",
		Example: `  bisigctl create-user --email captain@brgy.ph --name "Juan Dela Cruz" --role CAPTAIN --password secret123
  bisigctl create-user --email clerk@brgy.ph --role SECRETARY --inactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			role = strings.ToUpper(strings.TrimSpace(role))
			if !constants.IsValidRole(role) {
				return fmt.Errorf("role must be one of %s", strings.Join(constants.AllRoles, ", "))
			}
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" {
				return errors.New("--email is required")
			}
			generated := password == ""
			if generated {
				password = helperAuth.RandomPassword()
			} else if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}
			hash, err := helperAuth.HashPassword(password)
			if err != nil {
				return err
			}
			if name == "" {
				name = email
			}
			status := constants.StatusActive
			if inactive {
				status = constants.StatusInactive
			}

			db, closeDB := connect()
			defer closeDB()
			u := userModel.UserModel{
				UserName:     name,
				UserEmail:    email,
				UserPassword: hash,
				UserRole:     role,
				UserStatus:   status,
			}
			if err := authRepo.CreateUser(db, &u); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s, %s) id=%s\n", u.UserEmail, u.UserRole, u.UserStatus, u.UserID)
			if generated {
				fmt.Fprintf(cmd.OutOrStdout(), "generated password: %s\n", password)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the email)")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "password (generated when empty)")
	cmd.Flags().StringVar(&role, "role", constants.RoleSecretary, "SUPER_ADMIN, CAPTAIN, SECRETARY or TREASURER")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "create the account deactivated")
	return cmd
}

func resetPasswordCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Set a new password for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			generated := password == ""
			if generated {
				password = helperAuth.RandomPassword()
			} else if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}

			db, closeDB := connect()
			defer closeDB()
			u, err := authRepo.FindUserByEmail(db, strings.ToLower(strings.TrimSpace(args[0])))
			if err != nil {
				return fmt.Errorf("find %s: %w", args[0], err)
			}
			hash, err := helperAuth.HashPassword(password)
			if err != nil {
				return err
			}
			if err := authRepo.UpdateUserPassword(db, u.UserID, hash); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", u.UserEmail)
			if generated {
				fmt.Fprintf(cmd.OutOrStdout(), "generated password: %s\n", password)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new password (generated when empty)")
	return cmd
}
