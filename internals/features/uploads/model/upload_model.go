package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadModel struct {
	UploadID           uuid.UUID  `json:"upload_id" gorm:"column:upload_id;type:uuid;primaryKey"`
	UploadOriginalName string     `json:"upload_original_name" gorm:"column:upload_original_name;type:varchar(255);not null"`
	UploadFileName     string     `json:"upload_file_name" gorm:"column:upload_file_name;type:varchar(255);not null"`
	UploadStorePath    string     `json:"upload_store_path" gorm:"column:upload_store_path;type:text;not null"`
	UploadURL          string     `json:"upload_url" gorm:"column:upload_url;type:text;not null"`
	UploadContentType  string     `json:"upload_content_type" gorm:"column:upload_content_type;type:varchar(100);not null"`
	UploadSize         int64      `json:"upload_size" gorm:"column:upload_size;not null"`
	UploadPreviewURL   *string    `json:"upload_preview_url,omitempty" gorm:"column:upload_preview_url;type:text"`
	UploadDriver       string     `json:"upload_driver" gorm:"column:upload_driver;type:varchar(20);not null"`
	UploadUploadedBy   *uuid.UUID `json:"upload_uploaded_by,omitempty" gorm:"column:upload_uploaded_by;type:uuid"`

	UploadCreatedAt time.Time `json:"upload_created_at" gorm:"column:upload_created_at;autoCreateTime"`
}

func (UploadModel) TableName() string { return "uploads" }

func (m *UploadModel) BeforeCreate(*gorm.DB) error {
	if m.UploadID == uuid.Nil {
		m.UploadID = uuid.New()
	}
	return nil
}
