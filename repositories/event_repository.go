package repositories

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"anikutusu.link/configs/configslog"
	"anikutusu.link/models"

	"go.uber.org/zap"
)

var (
	// ErrEventNotFound etkinlik kök dizininin (veya meta kaydının) olmaması.
	// Dizin varlığı etkinliğin varlığı için tek otoritedir.
	ErrEventNotFound = errors.New("etkinlik bulunamadı")
	// ErrEventFieldInvalid meta alanında kayıt ayracı (satır sonu) bulunması.
	ErrEventFieldInvalid = errors.New("meta alanı satır sonu karakteri içeremez")
)

const (
	infoFileName = "event_info.txt"
	recordHeader = "#anikutusu v1"
)

// IEventRepository etkinlik kök dizini ve meta kaydı işlemleri için arayüz.
type IEventRepository interface {
	Create(eventID string) error
	RequireRoot(eventID string) (string, error)
	WriteInfo(eventID string, info models.EventInfo) error
	ReadInfo(eventID string) (models.EventInfo, error)
}

// EventRepository IEventRepository arayüzünü dosya sistemi üzerinde uygular.
type EventRepository struct {
	uploadRoot     string
	backgroundRoot string
}

// NewEventRepository verilen köklerle yeni bir EventRepository oluşturur.
func NewEventRepository(uploadRoot, backgroundRoot string) *EventRepository {
	return &EventRepository{uploadRoot: uploadRoot, backgroundRoot: backgroundRoot}
}

// eventRoot etkinliğin kök dizin yolunu döner. Kimlik içinde ayraç veya
// üst dizin bileşeni varsa boş döner; böyle bir kimlik hiçbir zaman var olamaz.
func (r *EventRepository) eventRoot(eventID string) string {
	if eventID == "" || eventID == "." || eventID == ".." ||
		strings.ContainsAny(eventID, "/\\") {
		return ""
	}
	return filepath.Join(r.uploadRoot, eventID)
}

// Create etkinlik kök dizinini (ve ilk kullanımda üst kökleri) oluşturur.
// Zaten varsa hata dönmez.
func (r *EventRepository) Create(eventID string) error {
	root := r.eventRoot(eventID)
	if root == "" {
		return fmt.Errorf("geçersiz etkinlik kimliği: %q", eventID)
	}
	if err := os.MkdirAll(r.backgroundRoot, 0o755); err != nil {
		return fmt.Errorf("arka plan kökü oluşturulamadı: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("etkinlik dizini oluşturulamadı: %w", err)
	}
	return nil
}

// RequireRoot etkinlik kök dizinini döner; dizin yoksa ErrEventNotFound.
// Erişim anındaki her işlem önce bunu çağırmalıdır.
func (r *EventRepository) RequireRoot(eventID string) (string, error) {
	root := r.eventRoot(eventID)
	if root == "" {
		return "", ErrEventNotFound
	}
	fi, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrEventNotFound
		}
		configslog.Log.Error("EventRepository.RequireRoot: stat hatası",
			zap.String("eventID", eventID), zap.Error(err))
		return "", err
	}
	if !fi.IsDir() {
		return "", ErrEventNotFound
	}
	return root, nil
}

// BackgroundRoot arka plan görsellerinin ortak dizinini döner.
func (r *EventRepository) BackgroundRoot() string {
	return r.backgroundRoot
}

// WriteInfo meta kaydını versiyonlu anahtar=değer formatında yazar.
// Kayıt her seferinde bütün olarak yeniden yazılır (kısmi güncelleme yok);
// önce geçici dosyaya yazılıp rename edilir.
func (r *EventRepository) WriteInfo(eventID string, info models.EventInfo) error {
	root, err := r.RequireRoot(eventID)
	if err != nil {
		return err
	}
	fields := [...][2]string{
		{"name", info.Name},
		{"date", info.Date},
		{"message", info.Message},
		{"background", info.Background},
	}
	var b strings.Builder
	b.WriteString(recordHeader)
	b.WriteByte('\n')
	for _, f := range fields {
		if strings.ContainsAny(f[1], "\r\n") {
			return fmt.Errorf("%w: %s", ErrEventFieldInvalid, f[0])
		}
		b.WriteString(f[0])
		b.WriteByte('=')
		b.WriteString(f[1])
		b.WriteByte('\n')
	}

	path := filepath.Join(root, infoFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("meta kaydı yazılamadı: %w", err)
	}
	return os.Rename(tmp, path)
}

// ReadInfo meta kaydını okur. Eksik anahtarlar boş string olarak döner;
// kısa veya eski bir kayıt tek başına hata nedeni olamaz. Dosya yoksa
// ErrEventNotFound döner.
func (r *EventRepository) ReadInfo(eventID string) (models.EventInfo, error) {
	root, err := r.RequireRoot(eventID)
	if err != nil {
		return models.EventInfo{}, err
	}
	f, err := os.Open(filepath.Join(root, infoFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return models.EventInfo{}, ErrEventNotFound
		}
		return models.EventInfo{}, err
	}
	defer f.Close()

	var info models.EventInfo
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "name":
			info.Name = value
		case "date":
			info.Date = value
		case "message":
			info.Message = value
		case "background":
			info.Background = value
		}
	}
	if err := scanner.Err(); err != nil {
		return models.EventInfo{}, err
	}
	return info, nil
}

var _ IEventRepository = (*EventRepository)(nil)
