package constants

import (
	"net/http"
	"path/filepath"
	"strings"
)

const (
	FileTypeUnknown = 0
	FileTypeImage   = 1
	FileTypePDF     = 2
)

// allowed upload content types keyed by extension
var uploadTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

func DetectFileTypeFromExt(filename string) int {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg":
		return FileTypeImage
	case ".pdf":
		return FileTypePDF
	default:
		return FileTypeUnknown
	}
}

// DetectUploadContentType sniffs the first bytes of a file and checks them against
// the extension. It returns "" when the file is not an accepted JPEG/PNG/PDF.
func DetectUploadContentType(filename string, head []byte) string {
	want, ok := uploadTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return ""
	}
	sniffed := http.DetectContentType(head)
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}
	if sniffed != want {
		return ""
	}
	return want
}
