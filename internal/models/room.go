package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Room struct {
	BaseModel
	Name       string     `json:"name" gorm:"type:varchar(255);not null"`
	PropertyID *uuid.UUID `json:"propertyID,omitempty" gorm:"type:uuid;index"`

	DocumentRoot uuid.UUID `json:"-" gorm:"type:uuid;not null"`
	PhotoRoot    uuid.UUID `json:"-" gorm:"type:uuid;not null"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if err := r.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if r.DocumentRoot == uuid.Nil {
		r.DocumentRoot = uuid.New()
	}
	if r.PhotoRoot == uuid.Nil {
		r.PhotoRoot = uuid.New()
	}
	return nil
}

func (Room) TableName() string {
	return "rooms"
}
