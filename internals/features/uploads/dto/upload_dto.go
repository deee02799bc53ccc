package dto

import (
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/uploads/model"
)

type UploadResponse struct {
	ID           uuid.UUID  `json:"id"`
	OriginalName string     `json:"original_name"`
	FileName     string     `json:"file_name"`
	Path         string     `json:"path"`
	URL          string     `json:"url"`
	ContentType  string     `json:"content_type"`
	Size         int64      `json:"size"`
	PreviewURL   *string    `json:"preview_url"`
	Driver       string     `json:"driver"`
	UploadedBy   *uuid.UUID `json:"uploaded_by"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromModel(m *model.UploadModel) UploadResponse {
	return UploadResponse{
		ID:           m.UploadID,
		OriginalName: m.UploadOriginalName,
		FileName:     m.UploadFileName,
		Path:         m.UploadStorePath,
		URL:          m.UploadURL,
		ContentType:  m.UploadContentType,
		Size:         m.UploadSize,
		PreviewURL:   m.UploadPreviewURL,
		Driver:       m.UploadDriver,
		UploadedBy:   m.UploadUploadedBy,
		CreatedAt:    m.UploadCreatedAt,
	}
}
