package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ManagementContract holds the financial paperwork for a managed property.
// It stores plain documents only: no folder tree and no photo gallery.
type ManagementContract struct {
	BaseModel
	Reference  string     `json:"reference" gorm:"type:varchar(100);not null"`
	ClientID   *uuid.UUID `json:"clientID,omitempty" gorm:"type:uuid;index"`
	PropertyID *uuid.UUID `json:"propertyID,omitempty" gorm:"type:uuid;index"`

	DocumentRoot uuid.UUID `json:"-" gorm:"type:uuid;not null"`
}

func (m *ManagementContract) BeforeCreate(tx *gorm.DB) error {
	if err := m.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if m.DocumentRoot == uuid.Nil {
		m.DocumentRoot = uuid.New()
	}
	return nil
}

func (ManagementContract) TableName() string {
	return "management_contracts"
}
