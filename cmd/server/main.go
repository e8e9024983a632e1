package main

import (
	"fmt"
	"log"

	"galeria/internal/config"
	"galeria/internal/handler"
	"galeria/internal/router"
	"galeria/internal/service"
	"galeria/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize storage
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage client: %w", err)
	}

	// Initialize services
	uploadSvc := service.NewUploadService(store, cfg)
	gallerySvc := service.NewGalleryService(store, cfg)

	// Initialize handlers
	imageH := handler.NewImageHandler(gallerySvc)
	uploadH := handler.NewUploadHandler(uploadSvc)
	healthH := handler.NewHealthHandler(store, cfg.Upload.Folder+"/")

	// Setup router
	r := router.Setup(imageH, uploadH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
