package handlers

import (
	"errors"

	"anikutusu.link/configs"
	"anikutusu.link/configs/configslog"
	"anikutusu.link/models"
	"anikutusu.link/pkg/flashmessages"
	"anikutusu.link/pkg/renderer"
	"anikutusu.link/repositories"
	"anikutusu.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventHandler organizatör tarafındaki etkinlik işlemleri için handler.
type EventHandler struct {
	cfg          *configs.Config
	eventService services.IEventService
	syncService  services.ISyncService
	journal      repositories.ISyncJournal
}

// NewEventHandler yeni bir EventHandler örneği oluşturur.
func NewEventHandler(cfg *configs.Config, eventService services.IEventService, syncService services.ISyncService, journal repositories.ISyncJournal) *EventHandler {
	return &EventHandler{
		cfg:          cfg,
		eventService: eventService,
		syncService:  syncService,
		journal:      journal,
	}
}

// ShowCreateEvent etkinlik oluşturma formunu gösterir (GET /).
func (h *EventHandler) ShowCreateEvent(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title": "Yeni Etkinlik Albümü",
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/event_create", "layouts/main_layout", renderData)
}

// CreateEvent formdan gelen verilerle yeni bir etkinlik oluşturur
// (POST /panel/events/create).
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	input := services.CreateEventInput{
		Name:    c.FormValue("name"),
		Date:    c.FormValue("date"),
		Message: c.FormValue("message"),
	}

	// Arka plan görseli opsiyonel; dosya gelmediyse hata değildir.
	if fh, err := c.FormFile("background"); err == nil {
		input.Background = fh
	}

	event, err := h.eventService.CreateEvent(input)
	if err != nil {
		errMsg := "Etkinlik oluşturulamadı."
		if errors.Is(err, services.ErrBackgroundRejected) || errors.Is(err, services.ErrEventInvalidInput) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Panel - CreateEvent Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik albümü oluşturuldu.")
	return c.Redirect("/panel/events/"+event.ID, fiber.StatusFound)
}

// ShowEvent organizatör görünümünü gösterir: meta bilgiler, yükleme adresi,
// erişim kodu ve senkronizasyon durumu (GET /panel/events/:eventID).
func (h *EventHandler) ShowEvent(c *fiber.Ctx) error {
	eventID := c.Params("eventID")
	if _, err := uuid.Parse(eventID); err != nil {
		return h.redirectNotFound(c)
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return h.redirectNotFound(c)
		}
		configslog.Log.Error("Panel - ShowEvent Error", zap.String("eventID", eventID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
			"Title": "Sunucu Hatası",
		}, "layouts/error_layout")
	}

	hasCredential, err := h.syncService.HasCredential(eventID)
	if err != nil {
		configslog.Log.Warn("Panel - ShowEvent: senkronizasyon durumu okunamadı",
			zap.String("eventID", eventID), zap.Error(err))
	}

	records, err := h.journal.List(eventID)
	if err != nil {
		configslog.Log.Warn("Panel - ShowEvent: jurnal okunamadı",
			zap.String("eventID", eventID), zap.Error(err))
		records = []models.SyncRecord{}
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":         event.Info.Name,
		"Event":         event,
		"UploadURL":     event.UploadURL(h.cfg.BaseURL),
		"QRCodeURL":     "/album/" + event.ID + "/qr.png",
		"SyncEnabled":   h.syncService.Enabled(),
		"HasCredential": hasCredential,
		"SyncRecords":   records,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/event_show", "layouts/main_layout", renderData)
}

func (h *EventHandler) redirectNotFound(c *fiber.Ctx) error {
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Etkinlik bulunamadı.")
	return c.Redirect("/", fiber.StatusSeeOther)
}
