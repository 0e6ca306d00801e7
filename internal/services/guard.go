package services

import (
	"github.com/google/uuid"
	"github.com/rentfolio/backend/internal/models"
)

// ensureOwned is the single isolation check applied before any read or write
// on a folder, document or photo: the record's stored owner pair must match
// the resolved owner exactly. It runs before any I/O so cross-owner requests
// fail fast with ErrForbidden and never touch the file store.
func ensureOwned(owner Owner, recordKind models.OwnerKind, recordID uuid.UUID) error {
	if owner.Kind != recordKind || owner.ID != recordID {
		return ErrForbidden
	}
	return nil
}

func kindOf(owner Owner) kindSpec {
	return specByKind[owner.Kind]
}
