package services

import (
	"context"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rentfolio/backend/internal/models"
	"github.com/rentfolio/backend/pkg/logger"
	"gorm.io/gorm"
)

// folderNamePattern allows unicode letters and digits plus space, hyphen and
// underscore. Path separators are excluded by construction.
var folderNamePattern = regexp.MustCompile(`^[\p{L}\p{N} _-]+$`)

// FolderService maintains the per-owner folder hierarchy with materialized
// paths and the cascading soft delete over a subtree.
type FolderService struct {
	DB *gorm.DB
}

func NewFolderService(db *gorm.DB) *FolderService {
	return &FolderService{DB: db}
}

func validateFolderName(name string) error {
	err := validation.Validate(name,
		validation.Required.Error("folder name is required"),
		validation.RuneLength(1, 100).Error("folder name must be between 1 and 100 characters"),
		validation.Match(folderNamePattern).Error("folder name may only contain letters, digits, spaces, hyphens and underscores"),
	)
	if err != nil {
		return newValidationError("name", err.Error())
	}
	return nil
}

// Create adds a folder under parentID (nil = root) and materializes its path
// from the parent's. The sibling-name check and the insert share one
// transaction; on postgres a partial unique index backs the check as well.
func (s *FolderService) Create(ctx context.Context, owner Owner, name string, parentID *uuid.UUID) (*models.Folder, error) {
	if !kindOf(owner).hasFolders {
		return nil, ErrNotFound
	}
	if err := validateFolderName(name); err != nil {
		return nil, err
	}

	var created models.Folder
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		folderPath := name
		if parentID != nil {
			parent, err := loadFolder(tx, owner, *parentID)
			if err != nil {
				return err
			}
			folderPath = parent.Path + "/" + name
		}

		var duplicates int64
		query := tx.Model(&models.Folder{}).
			Where("owner_type = ? AND owner_id = ? AND name = ?", owner.Kind, owner.ID, name)
		if parentID != nil {
			query = query.Where("parent_id = ?", *parentID)
		} else {
			query = query.Where("parent_id IS NULL")
		}
		if err := query.Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			return newValidationError("name", "a folder with this name already exists here")
		}

		created = models.Folder{
			OwnerType: owner.Kind,
			OwnerID:   owner.ID,
			Name:      name,
			ParentID:  parentID,
			Path:      folderPath,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithOwner(owner.Ref(), "folder_created", map[string]interface{}{
		"folder_id":   created.ID.String(),
		"folder_path": created.Path,
	})

	return &created, nil
}

// List returns the live folders directly under parentID (nil = root) with
// direct document and subfolder counts, ordered by name.
func (s *FolderService) List(ctx context.Context, owner Owner, parentID *uuid.UUID) ([]models.Folder, error) {
	if !kindOf(owner).hasFolders {
		return nil, ErrNotFound
	}

	db := s.DB.WithContext(ctx)
	if parentID != nil {
		if _, err := loadFolder(db, owner, *parentID); err != nil {
			return nil, err
		}
	}

	query := db.Where("owner_type = ? AND owner_id = ?", owner.Kind, owner.ID)
	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}

	var folders []models.Folder
	if err := query.Order("name ASC").Find(&folders).Error; err != nil {
		return nil, err
	}

	if err := s.attachChildCounts(db, folders); err != nil {
		return nil, err
	}

	return folders, nil
}

// Get loads one folder within the owner's scope. An id belonging to another
// owner fails ErrForbidden, an absent id ErrNotFound.
func (s *FolderService) Get(ctx context.Context, owner Owner, folderID uuid.UUID) (*models.Folder, error) {
	if !kindOf(owner).hasFolders {
		return nil, ErrNotFound
	}
	return loadFolder(s.DB.WithContext(ctx), owner, folderID)
}

// Delete soft-deletes the folder, every descendant folder and every document
// any of them contain, in one transaction. Documents go first so the tree
// never lists a live document under a dead folder. Physical files are left in
// place; the cascade is a purely logical operation.
func (s *FolderService) Delete(ctx context.Context, owner Owner, folderID uuid.UUID) error {
	if !kindOf(owner).hasFolders {
		return ErrNotFound
	}

	db := s.DB.WithContext(ctx)
	if _, err := loadFolder(db, owner, folderID); err != nil {
		return err
	}

	var deletedDocs, deletedFolders int64
	err := db.Transaction(func(tx *gorm.DB) error {
		subtree, err := collectSubtree(tx, folderID)
		if err != nil {
			return err
		}

		docs := tx.Where("folder_id IN ?", subtree).Delete(&models.Document{})
		if docs.Error != nil {
			return docs.Error
		}
		deletedDocs = docs.RowsAffected

		folders := tx.Where("id IN ?", subtree).Delete(&models.Folder{})
		if folders.Error != nil {
			return folders.Error
		}
		deletedFolders = folders.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}

	logger.InfoWithOwner(owner.Ref(), "folder_deleted", map[string]interface{}{
		"folder_id":         folderID.String(),
		"folders_deleted":   deletedFolders,
		"documents_deleted": deletedDocs,
	})

	return nil
}

// collectSubtree walks the live folder tree breadth-first and returns the
// folder plus all its descendants.
func collectSubtree(tx *gorm.DB, folderID uuid.UUID) ([]uuid.UUID, error) {
	subtree := []uuid.UUID{folderID}
	frontier := []uuid.UUID{folderID}

	for len(frontier) > 0 {
		var children []models.Folder
		if err := tx.Select("id").Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, child := range children {
			subtree = append(subtree, child.ID)
			frontier = append(frontier, child.ID)
		}
	}

	return subtree, nil
}

func (s *FolderService) attachChildCounts(db *gorm.DB, folders []models.Folder) error {
	if len(folders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(folders))
	for i, folder := range folders {
		ids[i] = folder.ID
	}

	type countRow struct {
		GroupID uuid.UUID
		Count   int64
	}

	var docCounts []countRow
	if err := db.Model(&models.Document{}).
		Select("folder_id AS group_id, count(*) AS count").
		Where("folder_id IN ?", ids).
		Group("folder_id").
		Scan(&docCounts).Error; err != nil {
		return err
	}

	var subCounts []countRow
	if err := db.Model(&models.Folder{}).
		Select("parent_id AS group_id, count(*) AS count").
		Where("parent_id IN ?", ids).
		Group("parent_id").
		Scan(&subCounts).Error; err != nil {
		return err
	}

	docsByID := make(map[uuid.UUID]int64, len(docCounts))
	for _, row := range docCounts {
		docsByID[row.GroupID] = row.Count
	}
	subsByID := make(map[uuid.UUID]int64, len(subCounts))
	for _, row := range subCounts {
		subsByID[row.GroupID] = row.Count
	}

	for i := range folders {
		folders[i].DocumentCount = docsByID[folders[i].ID]
		folders[i].SubfolderCount = subsByID[folders[i].ID]
	}
	return nil
}

// loadFolder fetches a folder by id and applies the ownership guard.
func loadFolder(db *gorm.DB, owner Owner, folderID uuid.UUID) (*models.Folder, error) {
	var folder models.Folder
	if err := db.First(&folder, "id = ?", folderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := ensureOwned(owner, folder.OwnerType, folder.OwnerID); err != nil {
		return nil, err
	}
	return &folder, nil
}
