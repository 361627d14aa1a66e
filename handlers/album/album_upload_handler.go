package handlers

import (
	"errors"

	"anikutusu.link/configs/configslog"
	"anikutusu.link/pkg/flashmessages"
	"anikutusu.link/pkg/renderer"
	"anikutusu.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadHandler misafirlerin public yükleme sayfası için handler.
type UploadHandler struct {
	eventService  services.IEventService
	uploadService services.IUploadService
}

// NewUploadHandler yeni bir UploadHandler örneği oluşturur.
func NewUploadHandler(eventService services.IEventService, uploadService services.IUploadService) *UploadHandler {
	return &UploadHandler{eventService: eventService, uploadService: uploadService}
}

// requireEvent adres parametresindeki etkinliği getirir; yoksa misafiri
// kullanıcı dostu bir mesajla ana sayfaya yönlendirir.
func (h *UploadHandler) requireEvent(c *fiber.Ctx) (eventID string, redirected bool, err error) {
	eventID = c.Params("eventID")
	if _, parseErr := uuid.Parse(eventID); parseErr != nil {
		return "", true, h.redirectNotFound(c)
	}
	return eventID, false, nil
}

// ShowUploadPage misafir yükleme sayfasını etkinlik bilgileriyle gösterir
// (GET /album/:eventID/upload).
func (h *UploadHandler) ShowUploadPage(c *fiber.Ctx) error {
	eventID, redirected, err := h.requireEvent(c)
	if redirected {
		return err
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return h.redirectNotFound(c)
		}
		configslog.Log.Error("Album - ShowUploadPage Error", zap.String("eventID", eventID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
			"Title": "Sunucu Hatası",
		}, "layouts/error_layout")
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":         event.Info.Name,
		"Event":         event,
		"BackgroundURL": h.eventService.BackgroundURL(event.Info),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "public/upload", "layouts/main_layout", renderData)
}

// UploadMedia misafirden gelen medya dosyalarını işler ve aynı sayfaya geri
// yönlendirir (POST /album/:eventID/upload). Batch, en az bir dosya
// kaydedildiyse başarılı sayılır.
func (h *UploadHandler) UploadMedia(c *fiber.Ctx) error {
	eventID, redirected, err := h.requireEvent(c)
	if redirected {
		return err
	}
	redirectPath := "/album/" + eventID + "/upload"

	form, err := c.MultipartForm()
	if err != nil {
		configslog.Log.Warn("Album - UploadMedia: form çözümlenemedi",
			zap.String("eventID", eventID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			"Geçersiz dosya türü veya dosya seçilmedi.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	result, err := h.uploadService.SaveBatch(eventID, form.File["media"])
	if err != nil {
		if errors.Is(err, services.ErrUploadEventNotFound) {
			return h.redirectNotFound(c)
		}
		configslog.Log.Error("Album - UploadMedia Error", zap.String("eventID", eventID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			"Dosyalar yüklenirken bir sorun oluştu.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	if result.Success {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
			"Dosyalarınız yüklendi! Teşekkürler.")
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			"Geçersiz dosya türü veya dosya seçilmedi.")
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

// QRCodeImage daha önce üretilmiş erişim kodu görselini döner
// (GET /album/:eventID/qr.png).
func (h *UploadHandler) QRCodeImage(c *fiber.Ctx) error {
	eventID, redirected, err := h.requireEvent(c)
	if redirected {
		return err
	}

	path, err := h.eventService.QRCodePath(eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return h.redirectNotFound(c)
		}
		configslog.Log.Error("Album - QRCodeImage Error", zap.String("eventID", eventID), zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Type("png")
	return c.SendFile(path)
}

func (h *UploadHandler) redirectNotFound(c *fiber.Ctx) error {
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Etkinlik bulunamadı.")
	return c.Redirect("/", fiber.StatusSeeOther)
}
