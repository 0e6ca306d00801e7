package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentfolio/backend/internal/models"
	"github.com/rentfolio/backend/internal/storage"
	"github.com/rentfolio/backend/pkg/logger"
	"gorm.io/gorm"
)

// MaxUploadSize caps both document and photo uploads.
const MaxUploadSize = 10 << 20 // 10 MB

// documentMimeByExt is both the accepted-extension set and the MIME source.
// The client-declared Content-Type is never trusted.
var documentMimeByExt = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// DocumentUpload carries one incoming file. Data is fully buffered; uploads
// are capped well below anything worth streaming.
type DocumentUpload struct {
	Data     []byte
	Name     string
	FolderID *uuid.UUID
}

// FileContent is what view/download hand back to the HTTP layer.
type FileContent struct {
	Data     []byte
	MimeType string
	Name     string
}

// DocumentService binds uploaded files to folders and owners, enforcing the
// type/size rules before any byte reaches the store.
type DocumentService struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewDocumentService(db *gorm.DB, store storage.Store) *DocumentService {
	return &DocumentService{DB: db, Store: store}
}

// List returns live documents in the given folder (nil = root), newest first.
func (s *DocumentService) List(ctx context.Context, owner Owner, folderID *uuid.UUID) ([]models.Document, error) {
	db := s.DB.WithContext(ctx)

	query := db.Where("owner_type = ? AND owner_id = ?", owner.Kind, owner.ID)
	if folderID != nil {
		if _, err := s.folderForOwner(db, owner, *folderID); err != nil {
			return nil, err
		}
		query = query.Where("folder_id = ?", *folderID)
	} else {
		query = query.Where("folder_id IS NULL")
	}

	var documents []models.Document
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

// Upload validates the file, derives its stored name, writes the bytes and
// persists the metadata row. Validation happens strictly before any I/O, so a
// rejected upload leaves neither a row nor a file behind. If the row insert
// fails after the write, the stored file is removed again.
func (s *DocumentService) Upload(ctx context.Context, owner Owner, upload DocumentUpload) (*models.Document, error) {
	name := strings.TrimSpace(upload.Name)
	if name == "" {
		return nil, newValidationError("file", "a file name is required")
	}

	ext := extensionOf(name)
	mimeType, allowed := documentMimeByExt[ext]
	if !allowed {
		return nil, newValidationError("file", "file type must be one of: pdf, doc, docx, jpg, jpeg, png")
	}
	if len(upload.Data) == 0 {
		return nil, newValidationError("file", "uploaded file is empty")
	}
	if len(upload.Data) > MaxUploadSize {
		return nil, newValidationError("file", "file may not exceed 10 MB")
	}

	db := s.DB.WithContext(ctx)

	folderPath := ""
	if upload.FolderID != nil {
		folder, err := s.folderForOwner(db, owner, *upload.FolderID)
		if err != nil {
			return nil, err
		}
		folderPath = folder.Path
	}

	uploadID := uuid.New()
	uploadedAt := time.Now().UTC()
	storedName := DocumentStoredName(uploadID, name, uploadedAt)
	storagePath := documentStoragePath(owner, folderPath, storedName)

	if err := s.Store.Put(ctx, storagePath, upload.Data); err != nil {
		return nil, err
	}

	document := models.Document{
		OwnerType:   owner.Kind,
		OwnerID:     owner.ID,
		FolderID:    upload.FolderID,
		Name:        name,
		StoredName:  storedName,
		Extension:   ext,
		MimeType:    mimeType,
		Size:        int64(len(upload.Data)),
		StoragePath: storagePath,
	}
	if err := db.Create(&document).Error; err != nil {
		if cleanupErr := s.Store.Delete(ctx, storagePath); cleanupErr != nil {
			logger.Error("document_upload_cleanup_failed", cleanupErr, map[string]interface{}{
				"storage_path": storagePath,
			})
		}
		return nil, err
	}

	logger.InfoWithOwner(owner.Ref(), "document_uploaded", map[string]interface{}{
		"document_id":  document.ID.String(),
		"name":         name,
		"size":         document.Size,
		"mime_type":    mimeType,
		"storage_path": storagePath,
	})

	return &document, nil
}

// Get loads one document within the owner's scope; foreign ownership fails
// ErrForbidden before anything else happens.
func (s *DocumentService) Get(ctx context.Context, owner Owner, documentID uuid.UUID) (*models.Document, error) {
	var document models.Document
	if err := s.DB.WithContext(ctx).First(&document, "id = ?", documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := ensureOwned(owner, document.OwnerType, document.OwnerID); err != nil {
		return nil, err
	}
	return &document, nil
}

// IsViewable gates the inline browser rendering path: only PDFs and images
// qualify, everything else must be downloaded.
func IsViewable(document *models.Document) bool {
	return document.MimeType == "application/pdf" || strings.HasPrefix(document.MimeType, "image/")
}

// OpenForView returns the bytes for inline display, or ErrUnsupportedForView
// for types the browser cannot render.
func (s *DocumentService) OpenForView(ctx context.Context, owner Owner, documentID uuid.UUID) (*FileContent, error) {
	document, err := s.Get(ctx, owner, documentID)
	if err != nil {
		return nil, err
	}
	if !IsViewable(document) {
		return nil, ErrUnsupportedForView
	}
	return s.open(ctx, document)
}

// OpenForDownload returns the bytes for attachment download, any type.
func (s *DocumentService) OpenForDownload(ctx context.Context, owner Owner, documentID uuid.UUID) (*FileContent, error) {
	document, err := s.Get(ctx, owner, documentID)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, document)
}

// Delete soft-deletes the row. For owner kinds whose files are retained
// (management contracts) the physical file stays until permanent deletion;
// for the rest it is removed best effort once the row is gone.
func (s *DocumentService) Delete(ctx context.Context, owner Owner, documentID uuid.UUID) error {
	document, err := s.Get(ctx, owner, documentID)
	if err != nil {
		return err
	}

	if err := s.DB.WithContext(ctx).Delete(&models.Document{}, "id = ?", document.ID).Error; err != nil {
		return err
	}

	if !kindOf(owner).retainFiles {
		if err := s.Store.Delete(ctx, document.StoragePath); err != nil {
			logger.Error("document_file_delete_failed", err, map[string]interface{}{
				"document_id":  document.ID.String(),
				"storage_path": document.StoragePath,
			})
		}
	}

	logger.InfoWithOwner(owner.Ref(), "document_deleted", map[string]interface{}{
		"document_id":   document.ID.String(),
		"file_retained": kindOf(owner).retainFiles,
	})

	return nil
}

func (s *DocumentService) open(ctx context.Context, document *models.Document) (*FileContent, error) {
	data, err := s.Store.Get(ctx, document.StoragePath)
	if err != nil {
		return nil, err
	}
	return &FileContent{Data: data, MimeType: document.MimeType, Name: document.Name}, nil
}

// folderForOwner resolves a referenced folder for owners that have folder
// trees; kinds without one (management contracts) cannot reference any.
func (s *DocumentService) folderForOwner(db *gorm.DB, owner Owner, folderID uuid.UUID) (*models.Folder, error) {
	if !kindOf(owner).hasFolders {
		return nil, ErrNotFound
	}
	folder, err := loadFolder(db, owner, folderID)
	if err != nil {
		return nil, fmt.Errorf("resolving folder %s: %w", folderID, err)
	}
	return folder, nil
}
