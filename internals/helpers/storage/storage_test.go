package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, "/uploads/")

	err := s.Put(context.Background(), "certs/a.pdf", strings.NewReader("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(root, "certs", "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(got))
	assert.Equal(t, "/uploads/certs/a.pdf", s.PublicURL("certs/a.pdf"))

	require.NoError(t, s.Delete(context.Background(), "certs/a.pdf"))
	_, err = os.Stat(filepath.Join(root, "certs", "a.pdf"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is not an error
	assert.NoError(t, s.Delete(context.Background(), "certs/a.pdf"))
}

func TestLocalStoreKeepsKeysInsideRoot(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, "/uploads")

	require.NoError(t, s.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), ""))
	_, err := os.Stat(filepath.Join(root, "escape.txt"))
	assert.NoError(t, err)
}

func TestWebPPreviewDownscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1200, 600))
	for x := 0; x < 1200; x++ {
		img.Set(x, 10, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := WebPPreview(buf.Bytes())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	decoded, err := decodeImage(out)
	require.NoError(t, err)
	assert.Equal(t, PreviewMaxW, decoded.Bounds().Dx())
	assert.Equal(t, 240, decoded.Bounds().Dy())
}

func TestWebPPreviewRejectsPDF(t *testing.T) {
	_, err := WebPPreview([]byte("%PDF-1.4 not an image"))
	assert.Error(t, err)
}

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "bisig/certs/a.png", JoinKey("/bisig/", "", "certs/a.png"))
}
