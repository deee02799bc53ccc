package helper

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxStemLen = 72

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if !reExt.MatchString(ext) {
		ext = ""
	}
	stem = Slugify(stem, maxStemLen)
	if stem == "item" {
		stem = "file"
	}
	return stem + ext
}

// GenerateUniqueFilename builds <yyyymmdd>-<uuid>-<slugged name>.
func GenerateUniqueFilename(original string) string {
	return time.Now().Format("20060102") + "-" + uuid.NewString() + "-" + sanitizeFilename(original)
}
