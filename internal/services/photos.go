package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rentfolio/backend/internal/models"
	"github.com/rentfolio/backend/internal/storage"
	"github.com/rentfolio/backend/pkg/logger"
	"gorm.io/gorm"
)

var photoMimeByExt = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// PhotoService manages the flat per-owner image gallery. Unlike documents,
// photos are hard-deleted together with their physical file.
type PhotoService struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewPhotoService(db *gorm.DB, store storage.Store) *PhotoService {
	return &PhotoService{DB: db, Store: store}
}

// List returns the owner's photos ordered by sort order.
func (s *PhotoService) List(ctx context.Context, owner Owner) ([]models.Photo, error) {
	if !kindOf(owner).hasPhotos {
		return nil, ErrNotFound
	}

	var photos []models.Photo
	err := s.DB.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", owner.Kind, owner.ID).
		Order("sort_order ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// Upload validates the image, assigns the next sort order and writes it into
// the owner's gallery directory, creating the directory on first use. The
// max+1 read and the insert share one transaction. Deleting a photo later
// leaves a gap; sort orders are never renumbered.
func (s *PhotoService) Upload(ctx context.Context, owner Owner, data []byte, originalName string) (*models.Photo, error) {
	if !kindOf(owner).hasPhotos {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(originalName)
	if name == "" {
		return nil, newValidationError("file", "a file name is required")
	}

	mimeType, allowed := photoMimeByExt[extensionOf(name)]
	if !allowed {
		return nil, newValidationError("file", "photo must be a jpg, jpeg or png image")
	}
	if len(data) == 0 {
		return nil, newValidationError("file", "uploaded file is empty")
	}
	if len(data) > MaxUploadSize {
		return nil, newValidationError("file", "photo may not exceed 10 MB")
	}

	galleryRoot := photoRootPath(owner)
	exists, err := s.Store.Exists(ctx, galleryRoot)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := s.Store.MakeDirectory(ctx, galleryRoot); err != nil {
			return nil, err
		}
	}

	storedName := PhotoStoredName(name)
	storagePath := galleryRoot + "/" + storedName

	if err := s.Store.Put(ctx, storagePath, data); err != nil {
		return nil, err
	}

	var photo models.Photo
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		row := tx.Model(&models.Photo{}).
			Select("COALESCE(MAX(sort_order), 0)").
			Where("owner_type = ? AND owner_id = ?", owner.Kind, owner.ID).
			Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}

		photo = models.Photo{
			OwnerType:   owner.Kind,
			OwnerID:     owner.ID,
			SortOrder:   maxOrder + 1,
			Name:        name,
			StoredName:  storedName,
			MimeType:    mimeType,
			Size:        int64(len(data)),
			StoragePath: storagePath,
		}
		return tx.Create(&photo).Error
	})
	if err != nil {
		if cleanupErr := s.Store.Delete(ctx, storagePath); cleanupErr != nil {
			logger.Error("photo_upload_cleanup_failed", cleanupErr, map[string]interface{}{
				"storage_path": storagePath,
			})
		}
		return nil, err
	}

	logger.InfoWithOwner(owner.Ref(), "photo_uploaded", map[string]interface{}{
		"photo_id":   photo.ID.String(),
		"sort_order": photo.SortOrder,
		"size":       photo.Size,
	})

	return &photo, nil
}

// Get loads one photo within the owner's scope.
func (s *PhotoService) Get(ctx context.Context, owner Owner, photoID uuid.UUID) (*models.Photo, error) {
	if !kindOf(owner).hasPhotos {
		return nil, ErrNotFound
	}

	var photo models.Photo
	if err := s.DB.WithContext(ctx).First(&photo, "id = ?", photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := ensureOwned(owner, photo.OwnerType, photo.OwnerID); err != nil {
		return nil, err
	}
	return &photo, nil
}

// Open returns the image bytes. Thumbnails are served from the same bytes;
// no derivative is generated.
func (s *PhotoService) Open(ctx context.Context, owner Owner, photoID uuid.UUID) (*FileContent, error) {
	photo, err := s.Get(ctx, owner, photoID)
	if err != nil {
		return nil, err
	}
	data, err := s.Store.Get(ctx, photo.StoragePath)
	if err != nil {
		return nil, err
	}
	return &FileContent{Data: data, MimeType: photo.MimeType, Name: photo.Name}, nil
}

// Delete removes the physical file and then the row, permanently. The file
// goes first so a storage failure aborts the whole operation and the record
// keeps pointing at an existing file.
func (s *PhotoService) Delete(ctx context.Context, owner Owner, photoID uuid.UUID) error {
	photo, err := s.Get(ctx, owner, photoID)
	if err != nil {
		return err
	}

	if err := s.Store.Delete(ctx, photo.StoragePath); err != nil {
		return err
	}

	if err := s.DB.WithContext(ctx).Delete(&models.Photo{}, "id = ?", photo.ID).Error; err != nil {
		return err
	}

	logger.InfoWithOwner(owner.Ref(), "photo_deleted", map[string]interface{}{
		"photo_id":   photo.ID.String(),
		"sort_order": photo.SortOrder,
	})

	return nil
}
