package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rentfolio/backend/internal/database"
	"github.com/rentfolio/backend/internal/middleware"
	"github.com/rentfolio/backend/internal/models"
	"github.com/rentfolio/backend/internal/services"
	"github.com/rentfolio/backend/internal/storage"
	"github.com/rentfolio/backend/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	store *storage.LocalStore
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(logger.Init)

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

	resolver := services.NewOwnerResolver(db)
	folderService := services.NewFolderService(db)
	documentService := services.NewDocumentService(db, store)
	photoService := services.NewPhotoService(db, store)

	foldersHandler := NewFoldersHandler(folderService)
	documentsHandler := NewDocumentsHandler(documentService)
	photosHandler := NewPhotosHandler(photoService)

	ownerScope := middleware.NewOwnerScope(resolver)

	app := fiber.New(fiber.Config{BodyLimit: 12 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	ownerRoutes := api.Group("/:ownerKind/:ownerID", ownerScope.Resolve)

	ownerRoutes.Get("/folders", foldersHandler.List)
	ownerRoutes.Post("/folders", foldersHandler.Create)
	ownerRoutes.Delete("/folders/:folderId", foldersHandler.Delete)

	ownerRoutes.Get("/documents", documentsHandler.List)
	ownerRoutes.Post("/documents", documentsHandler.Upload)
	ownerRoutes.Get("/documents/:docId/view", documentsHandler.View)
	ownerRoutes.Get("/documents/:docId/download", documentsHandler.Download)
	ownerRoutes.Delete("/documents/:docId", documentsHandler.Delete)

	ownerRoutes.Get("/photos", photosHandler.List)
	ownerRoutes.Post("/photos", photosHandler.Upload)
	ownerRoutes.Get("/photos/:photoId/view", photosHandler.View)
	ownerRoutes.Get("/photos/:photoId/thumbnail", photosHandler.View)
	ownerRoutes.Delete("/photos/:photoId", photosHandler.Delete)

	return &testEnv{app: app, db: db, store: store}
}

// createTestClient returns the owner's URL prefix, e.g. /api/clients/{id}.
func createTestClient(t *testing.T, db *gorm.DB, firstName string) (*models.Client, string) {
	t.Helper()

	client := &models.Client{FirstName: firstName, LastName: "Test"}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed creating test client: %v", err)
	}
	return client, "/api/clients/" + client.ID.String()
}

func createTestProperty(t *testing.T, db *gorm.DB, name string) (*models.Property, string) {
	t.Helper()

	property := &models.Property{Name: name}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("failed creating test property: %v", err)
	}
	return property, "/api/properties/" + property.ID.String()
}

func createTestContract(t *testing.T, db *gorm.DB, reference string) (*models.ManagementContract, string) {
	t.Helper()

	contract := &models.ManagementContract{Reference: reference}
	if err := db.Create(contract).Error; err != nil {
		t.Fatalf("failed creating test management contract: %v", err)
	}
	return contract, "/api/management-contracts/" + contract.ID.String()
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	headers := map[string]string{}
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
		headers["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, headers)
}

// performUpload posts a multipart form with a `file` part plus extra fields.
func performUpload(t *testing.T, app *fiber.App, path, filename string, data []byte, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed creating form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed writing form file: %v", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed writing form field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed closing multipart writer: %v", err)
	}

	headers := map[string]string{"Content-Type": writer.FormDataContentType()}
	return performRequest(t, app, http.MethodPost, path, &buf, headers)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["message"].(string); got != expected {
		t.Fatalf("expected message %q, got %q", expected, got)
	}
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %+v", body["data"])
	}
	return data
}

func dataList(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected array data, got %+v", body["data"])
	}
	return data
}
