package routes

import (
	"anikutusu.link/configs"
	"anikutusu.link/repositories"
	"anikutusu.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps rotaların ihtiyaç duyduğu bağımlılıklar. Global durum yerine main
// içinde kurulup buraya verilir.
type Deps struct {
	Cfg          *configs.Config
	EventService services.IEventService
	UploadSvc    services.IUploadService
	SyncService  services.ISyncService
	Handshakes   *services.HandshakeStore
	Journal      repositories.ISyncJournal
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps Deps) {
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(initializeSessionLocals())

	// Arka plan görselleri public olarak servis edilir.
	app.Static("/static/backgrounds", deps.Cfg.BackgroundRoot)

	registerPanelRoutes(app, deps)
	registerAlbumRoutes(app, deps)

	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

// initializeSessionLocals session store'u her isteğin locals'ına koyar;
// flash mesajlar bunun üzerinden çalışır.
func initializeSessionLocals() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		return c.Next()
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404",
			fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	}
}
