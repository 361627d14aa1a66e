package services

import (
	"context"
	"errors"
	"os"
	"time"

	"anikutusu.link/configs/configslog"
	"anikutusu.link/models"
	"anikutusu.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// SyncServiceError özel servis hataları
type SyncServiceError string

func (e SyncServiceError) Error() string { return string(e) }

const (
	ErrSyncDisabled       SyncServiceError = "harici senkronizasyon yapılandırılmamış"
	ErrSyncEventNotFound  SyncServiceError = "etkinlik bulunamadı"
	ErrSyncExchangeFailed SyncServiceError = "yetkilendirme kodu takas edilemedi"
)

// ISyncService harici depolama senkronizasyonu işlemleri için arayüz.
type ISyncService interface {
	Enabled() bool
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	SaveCredential(eventID string, token *oauth2.Token) error
	HasCredential(eventID string) (bool, error)
	TrySync(ctx context.Context, eventID, localPath, displayName string) models.SyncOutcome
}

// SyncService ISyncService arayüzünü Google Drive üzerinde uygular.
// Senkronizasyon en fazla bir denemelik ve best-effort'tur: yerel kayıt
// gerçeğin kaynağıdır, buradaki hiçbir hata misafire yansımaz.
type SyncService struct {
	oauthCfg *oauth2.Config // nil ise senkronizasyon kapalı
	creds    repositories.ICredentialRepository
	journal  repositories.ISyncJournal
}

// NewSyncService yeni bir SyncService oluşturur. oauthCfg nil olabilir.
func NewSyncService(oauthCfg *oauth2.Config, creds repositories.ICredentialRepository, journal repositories.ISyncJournal) *SyncService {
	return &SyncService{oauthCfg: oauthCfg, creds: creds, journal: journal}
}

// Enabled yetkilendirme akışının başlatılabilir olup olmadığını döner.
func (s *SyncService) Enabled() bool {
	return s.oauthCfg != nil
}

// AuthURL verilen state ile Google onay ekranı adresini üretir.
// Refresh token alabilmek için offline erişim ve consent prompt istenir.
func (s *SyncService) AuthURL(state string) string {
	if s.oauthCfg == nil {
		return ""
	}
	return s.oauthCfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// ExchangeCode yetkilendirme kodunu kalıcı kimlik bilgisine çevirir.
func (s *SyncService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if s.oauthCfg == nil {
		return nil, ErrSyncDisabled
	}
	token, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		configslog.Log.Error("SyncService.ExchangeCode: takas hatası", zap.Error(err))
		return nil, ErrSyncExchangeFailed
	}
	return token, nil
}

// SaveCredential kimlik bilgisini etkinliğe bağlı olarak saklar.
func (s *SyncService) SaveCredential(eventID string, token *oauth2.Token) error {
	if err := s.creds.Save(eventID, token); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrSyncEventNotFound
		}
		return err
	}
	configslog.SLog.Infof("Harici senkronizasyon kimlik bilgisi kaydedildi: etkinlik %s", eventID)
	return nil
}

// HasCredential etkinlik için kimlik bilgisi olup olmadığını döner.
func (s *SyncService) HasCredential(eventID string) (bool, error) {
	_, found, err := s.creds.Load(eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return false, ErrSyncEventNotFound
		}
		return false, err
	}
	return found, nil
}

// TrySync yerel olarak kaydedilmiş bir dosyayı harici depolamaya aynalamayı
// dener. Kimlik bilgisi yoksa deneme yapılmaz (skipped). Her sonuç jurnale
// yazılır; hatalar loglanır ama asla dönmez.
func (s *SyncService) TrySync(ctx context.Context, eventID, localPath, displayName string) models.SyncOutcome {
	outcome := s.trySync(ctx, eventID, localPath, displayName)

	rec := models.SyncRecord{
		FileName:  displayName,
		Status:    outcome.Status,
		RemoteID:  outcome.RemoteID,
		Cause:     outcome.Cause,
		Timestamp: time.Now().UTC(),
	}
	if err := s.journal.Append(eventID, rec); err != nil {
		configslog.Log.Warn("TrySync: jurnal kaydı yazılamadı",
			zap.String("eventID", eventID), zap.String("file", displayName), zap.Error(err))
	}
	return outcome
}

func (s *SyncService) trySync(ctx context.Context, eventID, localPath, displayName string) models.SyncOutcome {
	token, found, err := s.creds.Load(eventID)
	if err != nil {
		configslog.Log.Error("TrySync: kimlik bilgisi okunamadı",
			zap.String("eventID", eventID), zap.Error(err))
		return models.SyncOutcome{Status: models.SyncFailed, Cause: "kimlik bilgisi okunamadı: " + err.Error()}
	}
	if !found {
		return models.SyncOutcome{Status: models.SyncSkipped}
	}
	if s.oauthCfg == nil {
		return models.SyncOutcome{Status: models.SyncFailed, Cause: string(ErrSyncDisabled)}
	}

	// Token süresi dolmuşsa TokenSource kendi yeniler; yenilenen token'ı
	// sonraki denemeler için saklarız.
	ts := s.oauthCfg.TokenSource(ctx, token)
	client := oauth2.NewClient(ctx, ts)

	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		s.logSyncFailure(eventID, displayName, err)
		return models.SyncOutcome{Status: models.SyncFailed, Cause: err.Error()}
	}

	f, err := os.Open(localPath)
	if err != nil {
		s.logSyncFailure(eventID, displayName, err)
		return models.SyncOutcome{Status: models.SyncFailed, Cause: err.Error()}
	}
	defer f.Close()

	remote, err := srv.Files.Create(&drive.File{Name: displayName}).
		Media(f).
		Context(ctx).
		Do()
	if err != nil {
		s.logSyncFailure(eventID, displayName, err)
		return models.SyncOutcome{Status: models.SyncFailed, Cause: err.Error()}
	}

	if fresh, tsErr := ts.Token(); tsErr == nil && fresh.AccessToken != token.AccessToken {
		if saveErr := s.creds.Save(eventID, fresh); saveErr != nil {
			configslog.Log.Warn("TrySync: yenilenen token saklanamadı",
				zap.String("eventID", eventID), zap.Error(saveErr))
		}
	}

	configslog.SLog.Infof("Dosya harici depolamaya aynalandı: etkinlik %s, dosya %s, uzak kimlik %s",
		eventID, displayName, remote.Id)
	return models.SyncOutcome{Status: models.SyncSynced, RemoteID: remote.Id}
}

func (s *SyncService) logSyncFailure(eventID, displayName string, err error) {
	configslog.Log.Error("Harici senkronizasyon başarısız",
		zap.String("eventID", eventID),
		zap.String("file", displayName),
		zap.Error(err))
}

var _ ISyncService = (*SyncService)(nil)
