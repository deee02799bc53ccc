package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bisig_backend/internals/constants"
	authRepo "bisig_backend/internals/features/users/auth/repository"
	helperAuth "bisig_backend/internals/helpers/auth"
	"bisig_backend/internals/testutil"
)

func useTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.OpenDB(t)
	orig := connect
	connect = func() (*gorm.DB, func()) { return db, func() {} }
	t.Cleanup(func() { connect = orig })
	return db
}

func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateUserCommand(t *testing.T) {
	db := useTestDB(t)

	out, err := run(createUserCmd(), "--email", " Captain@Brgy.ph ", "--name", "Juan Dela Cruz", "--role", "captain", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "created captain@brgy.ph (CAPTAIN, ACTIVE)")

	u, err := authRepo.FindUserByEmail(db, "captain@brgy.ph")
	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", u.UserName)
	assert.Equal(t, constants.RoleCaptain, u.UserRole)
	assert.NoError(t, helperAuth.CheckPasswordHash(u.UserPassword, "secret123"))

	out, err = run(createUserCmd(), "--email", "clerk@brgy.ph", "--inactive")
	require.NoError(t, err)
	assert.Contains(t, out, "generated password: ")
	clerk, err := authRepo.FindUserByEmail(db, "clerk@brgy.ph")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleSecretary, clerk.UserRole)
	assert.Equal(t, constants.StatusInactive, clerk.UserStatus)
	assert.Equal(t, "clerk@brgy.ph", clerk.UserName)

	_, err = run(createUserCmd(), "--email", "captain@brgy.ph", "--password", "secret123")
	assert.Error(t, err)
	_, err = run(createUserCmd(), "--email", "x@brgy.ph", "--role", "MAYOR")
	assert.ErrorContains(t, err, "role must be one of")
	_, err = run(createUserCmd(), "--email", "y@brgy.ph", "--password", "short")
	assert.EqualError(t, err, "password must be at least 8 characters")
	_, err = run(createUserCmd())
	assert.EqualError(t, err, "--email is required")
}

func TestResetPasswordCommand(t *testing.T) {
	db := useTestDB(t)
	u := testutil.CreateUser(t, db, constants.RoleTreasurer, constants.StatusActive)

	out, err := run(resetPasswordCmd(), strings.ToUpper(u.UserEmail), "--password", "brand-new-1")
	require.NoError(t, err)
	assert.Contains(t, out, "password updated for "+u.UserEmail)
	stored, err := authRepo.FindUserByEmail(db, u.UserEmail)
	require.NoError(t, err)
	assert.NoError(t, helperAuth.CheckPasswordHash(stored.UserPassword, "brand-new-1"))

	out, err = run(resetPasswordCmd(), u.UserEmail)
	require.NoError(t, err)
	i := strings.Index(out, "generated password: ")
	require.GreaterOrEqual(t, i, 0, out)
	generated := strings.TrimSpace(out[i+len("generated password: "):])
	stored, err = authRepo.FindUserByEmail(db, u.UserEmail)
	require.NoError(t, err)
	assert.NoError(t, helperAuth.CheckPasswordHash(stored.UserPassword, generated))

	_, err = run(resetPasswordCmd(), "nobody@brgy.ph", "--password", "brand-new-1")
	assert.ErrorContains(t, err, "find nobody@brgy.ph")
	_, err = run(resetPasswordCmd())
	assert.Error(t, err)
}
