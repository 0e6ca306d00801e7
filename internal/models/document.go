package models

import "github.com/google/uuid"

// Document binds one uploaded file to an owner and, optionally, to a folder
// in that owner's tree (nil FolderID = tree root). Name is the user-visible
// original filename; StoredName is the derived on-disk name and StoragePath
// the full path under the file store root. Rows are soft-deleted; whether the
// physical file survives deletion depends on the owner kind.
type Document struct {
	BaseModel
	OwnerType   OwnerKind  `json:"ownerType" gorm:"type:varchar(30);not null;index:idx_documents_owner"`
	OwnerID     uuid.UUID  `json:"ownerID" gorm:"type:uuid;not null;index:idx_documents_owner"`
	FolderID    *uuid.UUID `json:"folderID,omitempty" gorm:"type:uuid;index"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	StoredName  string     `json:"-" gorm:"type:varchar(255);not null"`
	Extension   string     `json:"extension" gorm:"type:varchar(10);not null"`
	MimeType    string     `json:"mimeType" gorm:"type:varchar(255);not null"`
	Size        int64      `json:"size" gorm:"not null;default:0"`
	StoragePath string     `json:"-" gorm:"type:text;not null"`

	Folder *Folder `json:"-" gorm:"foreignKey:FolderID"`
}

func (Document) TableName() string {
	return "documents"
}
