package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"bisig_backend/internals/configs"
	"bisig_backend/internals/constants"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/storage"
)

const (
	MsgTooLarge    = "File too large."
	MsgUnsupported = "Only JPEG, PNG or PDF files are allowed."
	MsgMissingFile = "File is required"
)

var unsafeFolder = regexp.MustCompile(`[^a-z0-9/_-]+`)

// Stored describes an object written through a storage.Store.
type Stored struct {
	OriginalName string
	FileName     string
	Key          string
	URL          string
	ContentType  string
	Size         int64
	PreviewURL   *string
	Driver       string
}

// CleanFolder lowercases the folder and strips anything outside [a-z0-9/_-].
func CleanFolder(folder string) string {
	folder = unsafeFolder.ReplaceAllString(strings.ToLower(strings.TrimSpace(folder)), "")
	return storage.JoinKey(strings.Split(folder, "/")...)
}

// FormFile reads the multipart field, answering 400 when it is missing.
func FormFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil, helper.ErrValidation(MsgMissingFile)
	}
	return fh, nil
}

// Save checks size and type, writes the file under folder and, for images,
// a downscaled WebP preview next to it.
func Save(ctx context.Context, store storage.Store, fh *multipart.FileHeader, folder string) (*Stored, error) {
	limit := configs.UploadMaxBytes
	if fh.Size > limit {
		return nil, helper.ErrValidation(MsgTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, helper.ErrValidation("Unable to read the uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, helper.ErrInternal("failed to read upload", err)
	}
	if int64(len(data)) > limit {
		return nil, helper.ErrValidation(MsgTooLarge)
	}

	ct := constants.DetectUploadContentType(fh.Filename, data)
	if ct == "" {
		return nil, helper.ErrValidation(MsgUnsupported)
	}

	name := helper.GenerateUniqueFilename(fh.Filename)
	key := storage.JoinKey(CleanFolder(folder), name)
	if err := store.Put(ctx, key, bytes.NewReader(data), ct); err != nil {
		return nil, helper.ErrInternal("failed to store file", err)
	}

	out := &Stored{
		OriginalName: fh.Filename,
		FileName:     name,
		Key:          key,
		URL:          store.PublicURL(key),
		ContentType:  ct,
		Size:         int64(len(data)),
		Driver:       store.Driver(),
	}

	if constants.DetectFileTypeFromExt(fh.Filename) == constants.FileTypeImage {
		out.PreviewURL = putPreview(ctx, store, key, data)
	}
	return out, nil
}

func putPreview(ctx context.Context, store storage.Store, key string, data []byte) *string {
	webp, err := storage.WebPPreview(data)
	if err != nil {
		zap.L().Warn("preview skipped", zap.String("key", key), zap.Error(err))
		return nil
	}
	pkey := fmt.Sprintf("%s.preview.webp", key)
	if err := store.Put(ctx, pkey, bytes.NewReader(webp), "image/webp"); err != nil {
		zap.L().Warn("preview not stored", zap.String("key", pkey), zap.Error(err))
		return nil
	}
	url := store.PublicURL(pkey)
	return &url
}

// Remove deletes an object and its preview, logging failures.
func Remove(ctx context.Context, store storage.Store, key string, hasPreview bool) {
	if err := store.Delete(ctx, key); err != nil {
		zap.L().Warn("object not deleted", zap.String("key", key), zap.Error(err))
	}
	if hasPreview {
		_ = store.Delete(ctx, key+".preview.webp")
	}
}
