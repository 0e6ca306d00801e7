package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	BaseModel
	FirstName string `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName  string `json:"lastName" gorm:"type:varchar(100);not null"`
	Email     string `json:"email" gorm:"type:varchar(255)"`
	Phone     string `json:"phone" gorm:"type:varchar(50)"`

	// Opaque per-client storage roots, assigned once at creation and never
	// reused. Physical paths are derived from these, not from the client id.
	DocumentRoot uuid.UUID `json:"-" gorm:"type:uuid;not null"`
	PhotoRoot    uuid.UUID `json:"-" gorm:"type:uuid;not null"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
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

func (Client) TableName() string {
	return "clients"
}
