package database

import (
	"fmt"

	"github.com/rentfolio/backend/internal/config"
	"github.com/rentfolio/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema. Tests run it against the in-memory sqlite
// driver, so the postgres-specific index is applied conditionally.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Property{},
		&models.Room{},
		&models.Condominium{},
		&models.ManagementContract{},
		&models.Folder{},
		&models.Document{},
		&models.Photo{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	// Enforces live sibling-folder-name uniqueness at the database, closing
	// the check-then-insert race between concurrent createFolder calls. The
	// zero uuid stands in for the NULL parent of root folders.
	index := `
CREATE UNIQUE INDEX IF NOT EXISTS idx_folders_live_sibling_name
ON folders (
  owner_type,
  owner_id,
  COALESCE(parent_id, '00000000-0000-0000-0000-000000000000'::uuid),
  name
)
WHERE deleted_at IS NULL;`

	return db.Exec(index).Error
}
