package routes

import (
	album_handlers "anikutusu.link/handlers/album"

	"github.com/gofiber/fiber/v2"
)

// registerAlbumRoutes misafirlere açık albüm rotalarını ve yetkilendirme
// callback'ini tanımlar.
func registerAlbumRoutes(app *fiber.App, deps Deps) {
	uploadHandler := album_handlers.NewUploadHandler(deps.EventService, deps.UploadSvc)
	syncHandler := album_handlers.NewSyncHandler(deps.EventService, deps.SyncService, deps.Handshakes)

	albumGroup := app.Group("/album/:eventID")
	albumGroup.Get("/upload", uploadHandler.ShowUploadPage) // GET /album/{eventID}/upload
	albumGroup.Post("/upload", uploadHandler.UploadMedia)   // POST /album/{eventID}/upload
	albumGroup.Get("/qr.png", uploadHandler.QRCodeImage)    // GET /album/{eventID}/qr.png
	albumGroup.Get("/sync", syncHandler.StartAuthorization) // GET /album/{eventID}/sync

	// Google redirect URI'si tek ve sabittir; etkinlik eşleşmesi state ile yapılır.
	app.Get("/oauth2/callback", syncHandler.Callback)
}
