package services

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"anikutusu.link/configs"
	"anikutusu.link/configs/configslog"
	"anikutusu.link/models"
	"anikutusu.link/pkg/mediafile"
	"anikutusu.link/repositories"

	"go.uber.org/zap"
)

// UploadServiceError özel servis hataları
type UploadServiceError string

func (e UploadServiceError) Error() string { return string(e) }

const ErrUploadEventNotFound UploadServiceError = "etkinlik bulunamadı"

// Harici senkronizasyon ağa bağlıdır; istekten bağımsız çalışır ama
// sınırsız süre de çalışmamalı.
const syncTimeout = 5 * time.Minute

// IUploadService misafir medya yüklemeleri için arayüz.
type IUploadService interface {
	SaveBatch(eventID string, files []*multipart.FileHeader) (models.UploadResult, error)
}

// UploadService gelen dosyaları doğrular, etkinlik köküne yazar ve her
// başarılı kayıttan sonra harici senkronizasyonu arka planda tetikler.
type UploadService struct {
	cfg    *configs.Config
	events repositories.IEventRepository
	sync   ISyncService
}

// NewUploadService yeni bir UploadService oluşturur.
func NewUploadService(cfg *configs.Config, events repositories.IEventRepository, sync ISyncService) *UploadService {
	return &UploadService{cfg: cfg, events: events, sync: sync}
}

// SaveBatch bir istekteki dosyaların tamamını işler. Batch sonucu, en az bir
// dosya kaydedildiyse başarılıdır; kısmi başarısızlık batch'i düşürmez.
// Aynı temizlenmiş ada sahip sonraki yükleme öncekinin üzerine yazar
// (son yazan kazanır; bilinçli ve belgelenmiş davranış).
func (s *UploadService) SaveBatch(eventID string, files []*multipart.FileHeader) (models.UploadResult, error) {
	// Fiber path parametreleri istek tamponunu gösterir; goroutine isteği
	// aştığı için kalıcı bir kopya al.
	eventID = strings.Clone(eventID)

	root, err := s.events.RequireRoot(eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return models.UploadResult{}, ErrUploadEventNotFound
		}
		return models.UploadResult{}, err
	}

	result := models.UploadResult{}
	for _, fh := range files {
		outcome := s.saveOne(eventID, root, fh)
		result.Files = append(result.Files, outcome)
		if outcome.Status == models.FileSaved {
			result.Success = true
		}
	}
	return result, nil
}

func (s *UploadService) saveOne(eventID, root string, fh *multipart.FileHeader) models.FileOutcome {
	if fh == nil || fh.Filename == "" {
		// Dosya verilmemiş; hata değil.
		return models.FileOutcome{Status: models.FileRejected, Reason: "dosya seçilmedi"}
	}
	outcome := models.FileOutcome{OriginalName: fh.Filename}

	if !mediafile.IsAllowed(fh.Filename, s.cfg.AllowedExtensions) {
		outcome.Status = models.FileRejected
		outcome.Reason = "izin verilmeyen dosya türü"
		return outcome
	}

	name := mediafile.Sanitize(fh.Filename)
	if name == "" {
		outcome.Status = models.FileRejected
		outcome.Reason = "geçersiz dosya adı"
		return outcome
	}

	if err := s.writeFile(root, name, fh); err != nil {
		configslog.Log.Error("SaveBatch: dosya yazılamadı",
			zap.String("eventID", eventID), zap.String("file", name), zap.Error(err))
		outcome.Status = models.FileRejected
		outcome.Reason = "dosya kaydedilemedi"
		return outcome
	}

	outcome.Status = models.FileSaved
	outcome.StoredName = name
	configslog.SLog.Infof("Dosya kaydedildi: etkinlik %s, dosya %s", eventID, name)

	// Yerel kayıt tamamlandıktan sonra, istekten bağımsız olarak aynala.
	s.kickOffSync(eventID, filepath.Join(root, name), name)
	return outcome
}

// writeFile dosyayı akış kopyalamayla yazar; hedef varsa üzerine yazılır.
func (s *UploadService) writeFile(root, name string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(root, name))
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// kickOffSync harici senkronizasyonu ateşle-unut olarak başlatır. İstek
// context'ine bağlanmaz; misafirin yanıtı senkronizasyonu beklemez.
func (s *UploadService) kickOffSync(eventID, localPath, displayName string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		s.sync.TrySync(ctx, eventID, localPath, displayName)
	}()
}

var _ IUploadService = (*UploadService)(nil)
