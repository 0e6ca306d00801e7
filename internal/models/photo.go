package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo is a gallery image attached directly to an owner; there is no folder
// concept. It does NOT use BaseModel because photos are hard-deleted together
// with their physical file, never soft-deleted. SortOrder is owner-scoped and
// monotonically assigned starting at 1; gaps left by deletions persist.
type Photo struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerType   OwnerKind `json:"ownerType" gorm:"type:varchar(30);not null;index:idx_photos_owner"`
	OwnerID     uuid.UUID `json:"ownerID" gorm:"type:uuid;not null;index:idx_photos_owner"`
	SortOrder   int       `json:"sortOrder" gorm:"not null;default:0"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	StoredName  string    `json:"-" gorm:"type:varchar(255);not null"`
	MimeType    string    `json:"mimeType" gorm:"type:varchar(255);not null"`
	Size        int64     `json:"size" gorm:"not null;default:0"`
	StoragePath string    `json:"-" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Photo) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Photo) TableName() string {
	return "photos"
}
