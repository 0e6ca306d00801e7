package models

import "github.com/google/uuid"

// Folder is a logical folder in one owner's document tree. Path is the
// materialized ancestor path: parent.Path + "/" + Name, or just Name at the
// root. It is computed once at creation; folders are never moved or renamed.
type Folder struct {
	BaseModel
	OwnerType OwnerKind  `json:"ownerType" gorm:"type:varchar(30);not null;index:idx_folders_owner"`
	OwnerID   uuid.UUID  `json:"ownerID" gorm:"type:uuid;not null;index:idx_folders_owner"`
	Name      string     `json:"name" gorm:"type:varchar(100);not null"`
	ParentID  *uuid.UUID `json:"parentID,omitempty" gorm:"type:uuid;index"`
	Path      string     `json:"path" gorm:"type:text;not null"`

	Parent   *Folder  `json:"-" gorm:"foreignKey:ParentID"`
	Children []Folder `json:"-" gorm:"foreignKey:ParentID"`

	DocumentCount  int64 `json:"documentCount" gorm:"-"`
	SubfolderCount int64 `json:"subfolderCount" gorm:"-"`
}

func (Folder) TableName() string {
	return "folders"
}
