package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-catalog-admin/internal/handler"
	"go-catalog-admin/internal/middleware"
	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/internal/service"
	"go-catalog-admin/internal/upload"
	"go-catalog-admin/internal/ws"
	"go-catalog-admin/pkg/config"
	"go-catalog-admin/pkg/database"
	"go-catalog-admin/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func openStore(cfg *config.Config, zl *zap.Logger) (*repository.Store, error) {
	if cfg.Store.Driver == "memory" {
		zl.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), nil
	}

	db, err := database.Connect(cfg.Database, zl)
	if err != nil {
		return nil, err
	}
	if err := repository.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return repository.NewGormStore(db), nil
}

// openStorage returns the image storage. The local store is also returned so
// its directory can be served statically.
func openStorage(ctx context.Context, cfg config.UploadConfig) (upload.Storage, *upload.LocalStorage, error) {
	if cfg.Driver == "minio" {
		s, err := upload.NewMinioStorage(ctx, upload.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
			PublicURL: cfg.Minio.PublicURL,
		})
		return s, nil, err
	}

	local, err := upload.NewLocalStorage(cfg.Dir, cfg.URLPrefix)
	if err != nil {
		return nil, nil, err
	}
	return local, local, nil
}

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Setup Store
	store, err := openStore(cfg, zl)
	if err != nil {
		zl.Fatal("store setup failed", zap.Error(err))
	}

	storage, local, err := openStorage(ctx, cfg.Upload)
	if err != nil {
		zl.Fatal("upload storage setup failed", zap.Error(err))
	}
	uploader := upload.NewUploader(storage, cfg.Upload.MaxBytes)

	// 3. Setup WebSocket Hub
	hub := ws.NewHub(zl.Named("ws"))
	go hub.Run(ctx)

	// 4. Dependency Injection (Wiring Layers)
	productService := service.NewProductService(store, uploader, hub, zl.Named("product"))
	productHandler := handler.NewProductHandler(productService, service.PageDefaults{
		Limit:    cfg.Pagination.DefaultLimit,
		MaxLimit: cfg.Pagination.MaxLimit,
	})

	lookupHandlers := make([]*handler.LookupHandler, 0, len(model.LookupKinds))
	for _, kind := range model.LookupKinds {
		svc := service.NewLookupService(store.Lookup(kind), hub, zl.Named("lookup"))
		lookupHandlers = append(lookupHandlers, handler.NewLookupHandler(svc))
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
		ErrorHandler: middleware.ErrorHandler(zl),
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.App.CORSOrigins}))

	if local != nil {
		app.Static(local.Prefix(), local.Dir())
	}

	// 6. Routes
	handler.Register(app, productHandler, lookupHandlers...)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(hub.Serve))

	// 7. Graceful Shutdown
	go func() {
		addr := ":" + cfg.App.Port
		zl.Info("listening", zap.String("addr", addr), zap.String("store", cfg.Store.Driver), zap.String("uploads", cfg.Upload.Driver))
		if err := app.Listen(addr); err != nil {
			zl.Panic("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	cancel()
	if err := app.Shutdown(); err != nil {
		zl.Fatal("server forced to shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}
