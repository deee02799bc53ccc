// Package testutil opens throwaway databases and drives fiber apps in tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bisig_backend/internals/configs"
	"bisig_backend/internals/constants"
	database "bisig_backend/internals/databases"
	userModel "bisig_backend/internals/features/users/user/model"
	helper "bisig_backend/internals/helpers"
	helperAuth "bisig_backend/internals/helpers/auth"
)

const Secret = "test-secret"

var dbSeq int64

// OpenDB returns a migrated in-memory sqlite database private to the test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	configs.JWTSecret = Secret
	if configs.SessionTTL == 0 {
		configs.SessionTTL = time.Hour
	}
	if configs.UploadMaxBytes == 0 {
		configs.UploadMaxBytes = 5 * 1024 * 1024
	}

	dsn := fmt.Sprintf("file:bisig_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// NewApp builds a bare fiber app with the production error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: helper.ErrorHandler,
		BodyLimit:    configs.MaxBodyBytes,
	})
}

func CreateUser(t *testing.T, db *gorm.DB, role, status string) userModel.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	n := atomic.AddInt64(&dbSeq, 1)
	u := userModel.UserModel{
		UserName:     fmt.Sprintf("%s user %d", strings.ToLower(role), n),
		UserEmail:    fmt.Sprintf("user%d@brgy.test", n),
		UserPassword: string(hash),
		UserRole:     role,
		UserStatus:   status,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// Login creates an ACTIVE user with role and returns it with a session token.
func Login(t *testing.T, db *gorm.DB, role string) (userModel.UserModel, string) {
	t.Helper()
	u := CreateUser(t, db, role, constants.StatusActive)
	return u, Token(t, u)
}

func Token(t *testing.T, u userModel.UserModel) string {
	t.Helper()
	tok, _, err := helperAuth.IssueSessionToken(helperAuth.SessionUser{
		ID:     u.UserID,
		Name:   u.UserName,
		Email:  u.UserEmail,
		Role:   u.UserRole,
		Status: u.UserStatus,
	}, Secret, time.Hour)
	require.NoError(t, err)
	return tok
}

// Response is a decoded JSON envelope.
type Response struct {
	Status int
	Body   map[string]any
	Raw    []byte
	Header http.Header
}

func (r Response) Data() map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

func (r Response) List() []any {
	l, _ := r.Body["data"].([]any)
	return l
}

func (r Response) Message() string {
	s, _ := r.Body["message"].(string)
	return s
}

// Do sends a JSON request with an optional bearer token.
func Do(t *testing.T, app *fiber.App, method, path, token string, body any) Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return send(t, app, req)
}

// Upload sends a multipart request with one file under field and extra form values.
func Upload(t *testing.T, app *fiber.App, path, token, field, filename string, content []byte, fields map[string]string) Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := Response{Status: resp.StatusCode, Raw: raw, Header: resp.Header}
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}
