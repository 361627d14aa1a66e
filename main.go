package main

import (
	"os"

	"anikutusu.link/configs"
	"anikutusu.link/configs/configslog"
	"anikutusu.link/repositories"
	"anikutusu.link/routes"
	"anikutusu.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.Sync()

	cfg := configs.LoadConfig()

	// Üst kökler ilk açılışta hazır olsun.
	if err := os.MkdirAll(cfg.UploadRoot, 0o755); err != nil {
		configslog.Log.Fatal("Yükleme kökü oluşturulamadı", zap.Error(err))
	}
	if err := os.MkdirAll(cfg.BackgroundRoot, 0o755); err != nil {
		configslog.Log.Fatal("Arka plan kökü oluşturulamadı", zap.Error(err))
	}

	eventRepo := repositories.NewEventRepository(cfg.UploadRoot, cfg.BackgroundRoot)
	credRepo := repositories.NewCredentialRepository(eventRepo)
	journal := repositories.NewSyncJournal(eventRepo)

	syncService := services.NewSyncService(cfg.OAuthConfig(), credRepo, journal)
	eventService := services.NewEventService(cfg, eventRepo)
	uploadService := services.NewUploadService(cfg, eventRepo, syncService)
	handshakes := services.NewHandshakeStore(cfg.HandshakeTTL)

	if !syncService.Enabled() {
		configslog.SLog.Info("Google istemci ayarları boş; harici senkronizasyon kapalı")
	}

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		// Limiti aşan istekler hiçbir dosya yazılmadan reddedilir.
		BodyLimit: cfg.MaxUploadBytes,
	})

	routes.SetupRoutes(app, routes.Deps{
		Cfg:          cfg,
		EventService: eventService,
		UploadSvc:    uploadService,
		SyncService:  syncService,
		Handshakes:   handshakes,
		Journal:      journal,
	})

	configslog.SLog.Infof("Sunucu dinlemede: %s", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
