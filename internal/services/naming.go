package services

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stored names are derived so that nothing about the original filename or its
// content can be guessed from the path, and so that no owner's path can be
// derived from another owner's identifiers.

// DocumentStoredName derives the on-disk name for a document:
// hex(SHA-256(uploadID || originalName || upload timestamp)) plus the
// lowercased original extension. Deterministic for identical inputs; two
// uploads of the same filename at different instants diverge.
func DocumentStoredName(uploadID uuid.UUID, originalName string, uploadedAt time.Time) string {
	h := sha256.New()
	h.Write([]byte(uploadID.String()))
	h.Write([]byte(originalName))
	h.Write([]byte(strconv.FormatInt(uploadedAt.UnixNano(), 10)))

	name := hex.EncodeToString(h.Sum(nil))
	if ext := extensionOf(originalName); ext != "" {
		name += "." + ext
	}
	return name
}

// PhotoStoredName generates a fresh random name for a gallery image. Photos
// are never path-addressed by folder, so a plain UUID suffices.
func PhotoStoredName(originalName string) string {
	name := uuid.New().String()
	if ext := extensionOf(originalName); ext != "" {
		name += "." + ext
	}
	return name
}

// extensionOf returns the lowercased extension without the leading dot.
func extensionOf(name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	return strings.ToLower(ext)
}

// documentRootPath is the top-level directory for one owner's documents,
// e.g. "client_documents/{uuid}". The uuid is the owner's opaque storage
// root, not its id.
func documentRootPath(owner Owner) string {
	return kindOf(owner).documentPrefix + "/" + owner.DocumentRoot.String()
}

// photoRootPath is the flat directory for one owner's gallery.
func photoRootPath(owner Owner) string {
	return kindOf(owner).photoPrefix + "/" + owner.PhotoRoot.String()
}

// documentStoragePath joins root, optional folder path and stored name.
func documentStoragePath(owner Owner, folderPath, storedName string) string {
	if folderPath == "" {
		return documentRootPath(owner) + "/" + storedName
	}
	return documentRootPath(owner) + "/" + folderPath + "/" + storedName
}
