package routes

import (
	panel_handlers "anikutusu.link/handlers/panel"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes organizatör tarafındaki rotaları tanımlar.
// Ayrı bir giriş sistemi yoktur; etkinlik sayfası kimliği bilene açıktır.
func registerPanelRoutes(app *fiber.App, deps Deps) {
	eventHandler := panel_handlers.NewEventHandler(deps.Cfg, deps.EventService, deps.SyncService, deps.Journal)

	app.Get("/", eventHandler.ShowCreateEvent) // GET / (oluşturma formu)

	panelGroup := app.Group("/panel")
	panelGroup.Post("/events/create", eventHandler.CreateEvent) // POST /panel/events/create
	panelGroup.Get("/events/:eventID", eventHandler.ShowEvent)  // GET /panel/events/{eventID}
}
