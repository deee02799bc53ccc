package model

import (
	"time"

	"gorm.io/datatypes"
)

// SingletonKey is the only row the settings table holds.
const SingletonKey = "certificates"

type CertificateSettingModel struct {
	CertificateSettingKey       string         `json:"certificate_setting_key" gorm:"column:certificate_setting_key;type:varchar(50);primaryKey"`
	CertificateSettingPayload   datatypes.JSON `json:"certificate_setting_payload" gorm:"column:certificate_setting_payload;not null"`
	CertificateSettingUpdatedBy *string        `json:"certificate_setting_updated_by,omitempty" gorm:"column:certificate_setting_updated_by;type:varchar(36)"`
	CertificateSettingUpdatedAt time.Time      `json:"certificate_setting_updated_at" gorm:"column:certificate_setting_updated_at;autoUpdateTime"`
}

func (CertificateSettingModel) TableName() string { return "certificate_settings" }

// Settings is the decoded payload.
type Settings struct {
	BarangayName     string            `json:"barangay_name" validate:"required,max=150"`
	MunicipalityName string            `json:"municipality_name" validate:"required,max=150"`
	ProvinceName     string            `json:"province_name" validate:"required,max=150"`
	CaptainName      string            `json:"captain_name" validate:"required,max=150"`
	HeaderText       string            `json:"header_text" validate:"max=2000"`
	FooterText       string            `json:"footer_text" validate:"max=2000"`
	LogoURL          string            `json:"logo_url,omitempty" validate:"omitempty,max=500"`
	Templates        map[string]string `json:"templates,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		BarangayName:     "Barangay",
		MunicipalityName: "Municipality",
		ProvinceName:     "Province",
		CaptainName:      "Punong Barangay",
		HeaderText:       "Republic of the Philippines",
		FooterText:       "Not valid without official dry seal.",
		Templates:        map[string]string{},
	}
}
