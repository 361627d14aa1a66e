package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"anikutusu.link/configs"
	"anikutusu.link/configs/configslog"
	"anikutusu.link/models"
	"anikutusu.link/pkg/mediafile"
	"anikutusu.link/repositories"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// EventServiceError özel servis hataları
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound       EventServiceError = "etkinlik bulunamadı"
	ErrEventCreationFailed EventServiceError = "etkinlik oluşturulamadı"
	ErrEventInvalidInput   EventServiceError = "geçersiz girdi verisi"
	ErrBackgroundRejected  EventServiceError = "arka plan görseli için izin verilmeyen dosya türü"
)

const qrFileName = "qrcode.png"

// CreateEventInput etkinlik oluşturma formundan gelen veriler.
// Tüm metin alanları serbest metindir; tarih için format doğrulaması yapılmaz.
type CreateEventInput struct {
	Name       string
	Date       string
	Message    string
	Background *multipart.FileHeader // opsiyonel
}

// IEventService etkinlik yaşam döngüsü işlemleri için arayüz.
type IEventService interface {
	CreateEvent(input CreateEventInput) (*models.Event, error)
	GetEvent(eventID string) (*models.Event, error)
	QRCodePath(eventID string) (string, error)
	BackgroundURL(info models.EventInfo) string
}

// EventService IEventService arayüzünü uygular.
type EventService struct {
	cfg    *configs.Config
	events repositories.IEventRepository
}

// NewEventService yeni bir EventService oluşturur.
func NewEventService(cfg *configs.Config, events repositories.IEventRepository) *EventService {
	return &EventService{cfg: cfg, events: events}
}

// CreateEvent yeni bir etkinlik albümü oluşturur: benzersiz kimlik üretir,
// depolama kökünü açar, opsiyonel arka plan görselini kaydeder, meta kaydını
// yazar ve yükleme adresini kodlayan erişim kodu görselini üretir.
func (s *EventService) CreateEvent(input CreateEventInput) (*models.Event, error) {
	// Kimlik çakışması olasılık olarak yok sayılır; doğrulama yapılmaz.
	eventID := uuid.NewString()

	if err := s.events.Create(eventID); err != nil {
		configslog.Log.Error("CreateEvent: depolama kökü açılamadı",
			zap.String("eventID", eventID), zap.Error(err))
		return nil, ErrEventCreationFailed
	}

	info := models.EventInfo{
		Name:    input.Name,
		Date:    input.Date,
		Message: input.Message,
	}

	if input.Background != nil && input.Background.Filename != "" {
		bgName, err := s.saveBackground(eventID, input.Background)
		if err != nil {
			return nil, err
		}
		info.Background = bgName
	}

	if err := s.events.WriteInfo(eventID, info); err != nil {
		if errors.Is(err, repositories.ErrEventFieldInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrEventInvalidInput, err)
		}
		configslog.Log.Error("CreateEvent: meta kaydı yazılamadı",
			zap.String("eventID", eventID), zap.Error(err))
		return nil, ErrEventCreationFailed
	}

	if err := s.writeQRCode(eventID); err != nil {
		configslog.Log.Error("CreateEvent: erişim kodu görseli üretilemedi",
			zap.String("eventID", eventID), zap.Error(err))
		return nil, ErrEventCreationFailed
	}

	event := &models.Event{ID: eventID, Info: info}
	configslog.SLog.Infof("Etkinlik oluşturuldu: %s (%s)", eventID, info.Name)
	return event, nil
}

// saveBackground arka plan görselini etkinlik kimliğiyle adlandırılmış
// üretilmiş bir isimle ortak arka plan dizinine kaydeder.
func (s *EventService) saveBackground(eventID string, fh *multipart.FileHeader) (string, error) {
	if !mediafile.IsAllowed(fh.Filename, s.cfg.AllowedExtensions) {
		return "", ErrBackgroundRejected
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	bgName := eventID + ext

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: arka plan açılamadı", ErrEventCreationFailed)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.cfg.BackgroundRoot, bgName))
	if err != nil {
		return "", fmt.Errorf("%w: arka plan yazılamadı", ErrEventCreationFailed)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("%w: arka plan yazılamadı", ErrEventCreationFailed)
	}
	return bgName, nil
}

// writeQRCode yükleme adresini kodlayan PNG'yi etkinlik köküne yazar.
func (s *EventService) writeQRCode(eventID string) error {
	root, err := s.events.RequireRoot(eventID)
	if err != nil {
		return err
	}
	uploadURL := models.Event{ID: eventID}.UploadURL(s.cfg.BaseURL)
	png, err := qrcode.Encode(uploadURL, qrcode.Medium, 256)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, qrFileName), png, 0o644)
}

// GetEvent etkinliği meta bilgisiyle birlikte getirir.
func (s *EventService) GetEvent(eventID string) (*models.Event, error) {
	info, err := s.events.ReadInfo(eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		configslog.Log.Error("GetEvent: meta kaydı okunamadı",
			zap.String("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return &models.Event{ID: eventID, Info: info}, nil
}

// QRCodePath daha önce üretilmiş erişim kodu görselinin yolunu döner.
func (s *EventService) QRCodePath(eventID string) (string, error) {
	root, err := s.events.RequireRoot(eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return "", ErrEventNotFound
		}
		return "", err
	}
	path := filepath.Join(root, qrFileName)
	if _, err := os.Stat(path); err != nil {
		return "", ErrEventNotFound
	}
	return path, nil
}

// BackgroundURL meta kayıttaki arka plan referansından public adresi üretir.
// Arka plan yoksa boş string döner.
func (s *EventService) BackgroundURL(info models.EventInfo) string {
	if info.Background == "" {
		return ""
	}
	return "/static/backgrounds/" + info.Background
}

var _ IEventService = (*EventService)(nil)
