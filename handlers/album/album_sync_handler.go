package handlers

import (
	"errors"

	"anikutusu.link/configs/configslog"
	"anikutusu.link/pkg/flashmessages"
	"anikutusu.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncHandler etkinlik başına harici depolama yetkilendirme akışı için handler.
type SyncHandler struct {
	eventService services.IEventService
	syncService  services.ISyncService
	handshakes   *services.HandshakeStore
}

// NewSyncHandler yeni bir SyncHandler örneği oluşturur.
func NewSyncHandler(eventService services.IEventService, syncService services.ISyncService, handshakes *services.HandshakeStore) *SyncHandler {
	return &SyncHandler{
		eventService: eventService,
		syncService:  syncService,
		handshakes:   handshakes,
	}
}

// StartAuthorization etkinlik için yetkilendirme el sıkışmasını başlatır ve
// onay ekranına yönlendirir (GET /album/:eventID/sync).
func (h *SyncHandler) StartAuthorization(c *fiber.Ctx) error {
	eventID := c.Params("eventID")
	if _, err := uuid.Parse(eventID); err != nil {
		return h.redirectNotFound(c)
	}

	// Etkinlik var olmalı; el sıkışma var olmayan bir etkinliğe bağlanamaz.
	if _, err := h.eventService.GetEvent(eventID); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return h.redirectNotFound(c)
		}
		configslog.Log.Error("Sync - StartAuthorization Error", zap.String("eventID", eventID), zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if !h.syncService.Enabled() {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			"Harici senkronizasyon bu sunucuda yapılandırılmamış.")
		return c.Redirect("/panel/events/"+eventID, fiber.StatusSeeOther)
	}

	state := h.handshakes.Begin(eventID)
	return c.Redirect(h.syncService.AuthURL(state), fiber.StatusFound)
}

// Callback yetkilendirme sonucunu alır, kodu kimlik bilgisine çevirir ve
// el sıkışmayı başlatan etkinlik için saklar (GET /oauth2/callback).
func (h *SyncHandler) Callback(c *fiber.Ctx) error {
	state := c.Query("state")

	// State bilinmiyorsa veya süresi geçmişse el sıkışma kurcalanmış ya da
	// zaman aşımına uğramış demektir; callback yanlış etkinliğe bağlanamaz.
	eventID, ok := h.handshakes.Consume(state)
	if !ok {
		configslog.Log.Warn("Sync - Callback: geçersiz veya süresi dolmuş state", zap.String("state", state))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			"Yetkilendirme isteği geçersiz veya süresi dolmuş. Lütfen tekrar deneyin.")
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	if errParam := c.Query("error"); errParam != "" {
		configslog.Log.Warn("Sync - Callback: yetkilendirme reddedildi",
			zap.String("eventID", eventID), zap.String("error", errParam))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yetkilendirme tamamlanmadı.")
		return c.Redirect("/panel/events/"+eventID, fiber.StatusSeeOther)
	}

	token, err := h.syncService.ExchangeCode(c.UserContext(), c.Query("code"))
	if err != nil {
		configslog.Log.Error("Sync - Callback: kod takası başarısız",
			zap.String("eventID", eventID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yetkilendirme tamamlanamadı.")
		return c.Redirect("/panel/events/"+eventID, fiber.StatusSeeOther)
	}

	if err := h.syncService.SaveCredential(eventID, token); err != nil {
		if errors.Is(err, services.ErrSyncEventNotFound) {
			return h.redirectNotFound(c)
		}
		configslog.Log.Error("Sync - Callback: kimlik bilgisi kaydedilemedi",
			zap.String("eventID", eventID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yetkilendirme kaydedilemedi.")
		return c.Redirect("/panel/events/"+eventID, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		"Harici senkronizasyon etkinleştirildi. Yeni yüklemeler buluta da aktarılacak.")
	return c.Redirect("/panel/events/"+eventID, fiber.StatusFound)
}

func (h *SyncHandler) redirectNotFound(c *fiber.Ctx) error {
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Etkinlik bulunamadı.")
	return c.Redirect("/", fiber.StatusSeeOther)
}
