package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Condominium struct {
	BaseModel
	Name    string `json:"name" gorm:"type:varchar(255);not null"`
	Address string `json:"address" gorm:"type:varchar(255)"`

	DocumentRoot uuid.UUID `json:"-" gorm:"type:uuid;not null"`
	PhotoRoot    uuid.UUID `json:"-" gorm:"type:uuid;not null"`
}

func (c *Condominium) BeforeCreate(tx *gorm.DB) error {
	if err := c.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if c.DocumentRoot == uuid.Nil {
		c.DocumentRoot = uuid.New()
	}
	if c.PhotoRoot == uuid.Nil {
		c.PhotoRoot = uuid.New()
	}
	return nil
}

func (Condominium) TableName() string {
	return "condominiums"
}
