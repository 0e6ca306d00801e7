package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentfolio/backend/internal/models"
	"gorm.io/gorm"
)

// Owner is the resolved identity every folder/document/photo operation runs
// under. Services never take raw ids; they take an Owner produced by the
// resolver and compare it against the stored record's own owner fields.
type Owner struct {
	Kind         models.OwnerKind
	ID           uuid.UUID
	DocumentRoot uuid.UUID
	PhotoRoot    uuid.UUID
}

// Ref renders the "kind/id" scope used in logs.
func (o Owner) Ref() string {
	return string(o.Kind) + "/" + o.ID.String()
}

// kindSpec describes one owner kind: how to load it, where its files live and
// which parts of the storage layer it participates in. The table below is the
// single place a new owner kind would be added.
type kindSpec struct {
	kind           models.OwnerKind
	documentPrefix string
	photoPrefix    string
	hasFolders     bool
	hasPhotos      bool

	// retainFiles keeps the physical file on disk when a document row is
	// soft-deleted. Management contract paperwork is retained until permanent
	// deletion; generic owner documents are not.
	retainFiles bool

	load func(db *gorm.DB, id uuid.UUID) (Owner, error)
}

var ownerKinds = map[string]kindSpec{
	"clients": {
		kind:           models.OwnerKindClient,
		documentPrefix: "client_documents",
		photoPrefix:    "client_photos",
		hasFolders:     true,
		hasPhotos:      true,
		load: func(db *gorm.DB, id uuid.UUID) (Owner, error) {
			var client models.Client
			if err := db.First(&client, "id = ?", id).Error; err != nil {
				return Owner{}, err
			}
			return Owner{
				Kind:         models.OwnerKindClient,
				ID:           client.ID,
				DocumentRoot: client.DocumentRoot,
				PhotoRoot:    client.PhotoRoot,
			}, nil
		},
	},
	"properties": {
		kind:           models.OwnerKindProperty,
		documentPrefix: "property_documents",
		photoPrefix:    "property_photos",
		hasFolders:     true,
		hasPhotos:      true,
		load: func(db *gorm.DB, id uuid.UUID) (Owner, error) {
			var property models.Property
			if err := db.First(&property, "id = ?", id).Error; err != nil {
				return Owner{}, err
			}
			return Owner{
				Kind:         models.OwnerKindProperty,
				ID:           property.ID,
				DocumentRoot: property.DocumentRoot,
				PhotoRoot:    property.PhotoRoot,
			}, nil
		},
	},
	"rooms": {
		kind:           models.OwnerKindRoom,
		documentPrefix: "room_documents",
		photoPrefix:    "room_photos",
		hasFolders:     true,
		hasPhotos:      true,
		load: func(db *gorm.DB, id uuid.UUID) (Owner, error) {
			var room models.Room
			if err := db.First(&room, "id = ?", id).Error; err != nil {
				return Owner{}, err
			}
			return Owner{
				Kind:         models.OwnerKindRoom,
				ID:           room.ID,
				DocumentRoot: room.DocumentRoot,
				PhotoRoot:    room.PhotoRoot,
			}, nil
		},
	},
	"condominiums": {
		kind:           models.OwnerKindCondominium,
		documentPrefix: "condominium_documents",
		photoPrefix:    "condominium_photos",
		hasFolders:     true,
		hasPhotos:      true,
		load: func(db *gorm.DB, id uuid.UUID) (Owner, error) {
			var condominium models.Condominium
			if err := db.First(&condominium, "id = ?", id).Error; err != nil {
				return Owner{}, err
			}
			return Owner{
				Kind:         models.OwnerKindCondominium,
				ID:           condominium.ID,
				DocumentRoot: condominium.DocumentRoot,
				PhotoRoot:    condominium.PhotoRoot,
			}, nil
		},
	},
	"management-contracts": {
		kind:           models.OwnerKindManagementContract,
		documentPrefix: "management_contract_documents",
		retainFiles:    true,
		load: func(db *gorm.DB, id uuid.UUID) (Owner, error) {
			var contract models.ManagementContract
			if err := db.First(&contract, "id = ?", id).Error; err != nil {
				return Owner{}, err
			}
			return Owner{
				Kind:         models.OwnerKindManagementContract,
				ID:           contract.ID,
				DocumentRoot: contract.DocumentRoot,
			}, nil
		},
	},
}

var specByKind = func() map[models.OwnerKind]kindSpec {
	index := make(map[models.OwnerKind]kindSpec, len(ownerKinds))
	for _, spec := range ownerKinds {
		index[spec.kind] = spec
	}
	return index
}()

// IsOwnerKindSlug reports whether the URL segment names a known owner kind.
func IsOwnerKindSlug(slug string) bool {
	_, ok := ownerKinds[slug]
	return ok
}

type OwnerResolver struct {
	DB *gorm.DB
}

func NewOwnerResolver(db *gorm.DB) *OwnerResolver {
	return &OwnerResolver{DB: db}
}

// Resolve loads the authoritative owner record for a kind slug + id.
// Unknown slugs and missing rows both come back as ErrNotFound.
func (r *OwnerResolver) Resolve(ctx context.Context, slug string, id uuid.UUID) (Owner, error) {
	spec, ok := ownerKinds[slug]
	if !ok {
		return Owner{}, ErrNotFound
	}

	owner, err := spec.load(r.DB.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Owner{}, ErrNotFound
		}
		return Owner{}, err
	}
	return owner, nil
}
