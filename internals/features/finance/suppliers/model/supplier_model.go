package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierModel struct {
	SupplierID            uuid.UUID `json:"supplier_id" gorm:"column:supplier_id;type:uuid;primaryKey"`
	SupplierName          string    `json:"supplier_name" gorm:"column:supplier_name;type:varchar(200);not null;uniqueIndex:uq_suppliers_name"`
	SupplierContactPerson *string   `json:"supplier_contact_person,omitempty" gorm:"column:supplier_contact_person;type:varchar(150)"`
	SupplierContactNumber *string   `json:"supplier_contact_number,omitempty" gorm:"column:supplier_contact_number;type:varchar(30)"`
	SupplierEmail         *string   `json:"supplier_email,omitempty" gorm:"column:supplier_email;type:varchar(255)"`
	SupplierAddress       *string   `json:"supplier_address,omitempty" gorm:"column:supplier_address;type:text"`
	SupplierTIN           *string   `json:"supplier_tin,omitempty" gorm:"column:supplier_tin;type:varchar(30)"`
	SupplierIsActive      bool      `json:"supplier_is_active" gorm:"column:supplier_is_active;not null"`

	SupplierCreatedAt time.Time `json:"supplier_created_at" gorm:"column:supplier_created_at;autoCreateTime"`
	SupplierUpdatedAt time.Time `json:"supplier_updated_at" gorm:"column:supplier_updated_at;autoUpdateTime"`
}

func (SupplierModel) TableName() string { return "suppliers" }

func (m *SupplierModel) BeforeCreate(*gorm.DB) error {
	if m.SupplierID == uuid.Nil {
		m.SupplierID = uuid.New()
	}
	return nil
}
