package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	BaseModel
	Name    string `json:"name" gorm:"type:varchar(255);not null"`
	Address string `json:"address" gorm:"type:varchar(255)"`
	City    string `json:"city" gorm:"type:varchar(100)"`

	DocumentRoot uuid.UUID `json:"-" gorm:"type:uuid;not null"`
	PhotoRoot    uuid.UUID `json:"-" gorm:"type:uuid;not null"`

	Rooms []Room `json:"-" gorm:"foreignKey:PropertyID"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if err := p.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if p.DocumentRoot == uuid.Nil {
		p.DocumentRoot = uuid.New()
	}
	if p.PhotoRoot == uuid.Nil {
		p.PhotoRoot = uuid.New()
	}
	return nil
}

func (Property) TableName() string {
	return "properties"
}
