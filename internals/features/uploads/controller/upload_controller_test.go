package controller_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/uploads/service"
	"bisig_backend/internals/testutil"
	"bisig_backend/internals/testutil/apitest"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		img.Set(x, x%30, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadRejectsLargeAndUnsupported(t *testing.T) {
	app, db := apitest.New(t)
	_, tok := testutil.Login(t, db, constants.RoleTreasurer)

	big := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), 6*1024*1024)...)
	res := testutil.Upload(t, app, "/api/uploads", tok, "file", "big.pdf", big, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, service.MsgTooLarge, res.Message())

	res = testutil.Upload(t, app, "/api/uploads", tok, "file", "notes.txt", []byte("hello"), nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, service.MsgUnsupported, res.Message())

	// extension says PNG, content does not
	res = testutil.Upload(t, app, "/api/uploads", tok, "file", "fake.png", []byte("%PDF-1.4 nope"), nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/uploads", tok, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestUploadImageWithPreview(t *testing.T) {
	app, db := apitest.New(t)
	_, tok := testutil.Login(t, db, constants.RoleSecretary)

	res := testutil.Upload(t, app, "/api/uploads", "", "file", "logo.png", pngBytes(t), nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = testutil.Upload(t, app, "/api/uploads", tok, "file", "Logo.PNG", pngBytes(t), map[string]string{"folder": "Settings/../Logos"})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	d := res.Data()
	assert.Equal(t, "image/png", d["content_type"])
	assert.Equal(t, "local", d["driver"])
	assert.True(t, strings.HasPrefix(d["path"].(string), "settings/logos/"), d["path"])
	assert.True(t, strings.HasPrefix(d["url"].(string), "/uploads/settings/logos/"))
	require.NotNil(t, d["preview_url"])
	assert.True(t, strings.HasSuffix(d["preview_url"].(string), ".preview.webp"))

	res = testutil.Do(t, app, http.MethodGet, "/api/uploads/"+d["id"].(string), tok, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Logo.PNG", res.Data()["original_name"])
}
