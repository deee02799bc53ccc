// Package apitest boots the full route table on a throwaway database. Only
// external (_test) packages may import it.
package apitest

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
	routes "bisig_backend/internals/route"
	"bisig_backend/internals/testutil"
)

// New returns an app with every /api route mounted, files stored under a temp dir.
func New(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	configs.UploadDriver = "local"
	configs.UploadDir = t.TempDir()
	app := testutil.NewApp()
	routes.SetupRoutes(app, db)
	return app, db
}
