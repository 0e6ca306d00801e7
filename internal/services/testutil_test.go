package services

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rentfolio/backend/internal/database"
	"github.com/rentfolio/backend/internal/models"
	"github.com/rentfolio/backend/internal/storage"
	"github.com/rentfolio/backend/pkg/logger"
	"gorm.io/gorm"
)

var loggerOnce sync.Once

type serviceEnv struct {
	db    *gorm.DB
	store *storage.LocalStore
}

func setupServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()

	loggerOnce.Do(logger.Init)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed migrating schema: %v", err)
	}

	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed creating local store: %v", err)
	}

	return &serviceEnv{db: db, store: store}
}

func createTestClient(t *testing.T, db *gorm.DB, firstName string) Owner {
	t.Helper()

	client := models.Client{FirstName: firstName, LastName: "Test"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("failed creating test client: %v", err)
	}
	return Owner{
		Kind:         models.OwnerKindClient,
		ID:           client.ID,
		DocumentRoot: client.DocumentRoot,
		PhotoRoot:    client.PhotoRoot,
	}
}

func createTestProperty(t *testing.T, db *gorm.DB, name string) Owner {
	t.Helper()

	property := models.Property{Name: name}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("failed creating test property: %v", err)
	}
	return Owner{
		Kind:         models.OwnerKindProperty,
		ID:           property.ID,
		DocumentRoot: property.DocumentRoot,
		PhotoRoot:    property.PhotoRoot,
	}
}

func createTestContract(t *testing.T, db *gorm.DB, reference string) Owner {
	t.Helper()

	contract := models.ManagementContract{Reference: reference}
	if err := db.Create(&contract).Error; err != nil {
		t.Fatalf("failed creating test management contract: %v", err)
	}
	return Owner{
		Kind:         models.OwnerKindManagementContract,
		ID:           contract.ID,
		DocumentRoot: contract.DocumentRoot,
	}
}
