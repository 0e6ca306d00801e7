package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rentfolio/backend/internal/config"
	"github.com/rentfolio/backend/internal/database"
	"github.com/rentfolio/backend/internal/handlers"
	"github.com/rentfolio/backend/internal/middleware"
	"github.com/rentfolio/backend/internal/services"
	"github.com/rentfolio/backend/internal/storage"
	"github.com/rentfolio/backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	logger.Init()
	cfg := config.Load()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	fileStore, err := newFileStore(cfg)
	if err != nil {
		log.Fatalf("file store initialization failed: %v", err)
	}

	resolver := services.NewOwnerResolver(db)
	folderService := services.NewFolderService(db)
	documentService := services.NewDocumentService(db, fileStore)
	photoService := services.NewPhotoService(db, fileStore)

	foldersHandler := handlers.NewFoldersHandler(folderService)
	documentsHandler := handlers.NewDocumentsHandler(documentService)
	photosHandler := handlers.NewPhotosHandler(photoService)

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

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":           cfg.Server.Port,
		"address":        listenAddr,
		"storage_driver": cfg.Storage.Driver,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}

func newFileStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "minio":
		store, err := storage.NewMinIOStore(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			return nil, fmt.Errorf("failed ensuring bucket: %w", err)
		}
		return store, nil
	default:
		return storage.NewLocalStore(cfg.Storage.LocalRoot)
	}
}
