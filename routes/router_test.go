package routes

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"anikutusu.link/configs"
	"anikutusu.link/models"
	"anikutusu.link/repositories"
	"anikutusu.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// syncRecorder ISyncService'in kayıt tutan sahte uygulaması. TrySync,
// release kanalı kapanana kadar bekler; böylece yanıt döndükten sonra
// çalışan senkronizasyonun davranışı gözlemlenebilir.
type syncRecorder struct {
	release chan struct{}
	synced  chan string
}

func newSyncRecorder() *syncRecorder {
	return &syncRecorder{release: make(chan struct{}), synced: make(chan string, 16)}
}

func (s *syncRecorder) Enabled() bool         { return false }
func (s *syncRecorder) AuthURL(string) string { return "" }
func (s *syncRecorder) ExchangeCode(context.Context, string) (*oauth2.Token, error) {
	return nil, services.ErrSyncDisabled
}
func (s *syncRecorder) SaveCredential(string, *oauth2.Token) error { return nil }
func (s *syncRecorder) HasCredential(string) (bool, error)         { return false, nil }

func (s *syncRecorder) TrySync(_ context.Context, eventID, _, _ string) models.SyncOutcome {
	<-s.release
	s.synced <- eventID
	return models.SyncOutcome{Status: models.SyncSkipped}
}

// newTestApp uygulamayı main ile aynı şekilde kurar: gövde sınırı fiber
// yapılandırmasında, rotalar SetupRoutes üzerinden.
func newTestApp(t *testing.T, bodyLimit int) (*fiber.App, *repositories.EventRepository, *syncRecorder) {
	t.Helper()
	cfg := &configs.Config{
		BaseURL:           "http://ornek.test",
		UploadRoot:        t.TempDir(),
		BackgroundRoot:    t.TempDir(),
		MaxUploadBytes:    bodyLimit,
		AllowedExtensions: configs.DefaultExtensions,
		HandshakeTTL:      time.Minute,
	}
	events := repositories.NewEventRepository(cfg.UploadRoot, cfg.BackgroundRoot)
	recorder := newSyncRecorder()

	app := fiber.New(fiber.Config{BodyLimit: cfg.MaxUploadBytes})
	SetupRoutes(app, Deps{
		Cfg:          cfg,
		EventService: services.NewEventService(cfg, events),
		UploadSvc:    services.NewUploadService(cfg, events, recorder),
		SyncService:  recorder,
		Handshakes:   services.NewHandshakeStore(cfg.HandshakeTTL),
		Journal:      repositories.NewSyncJournal(events),
	})
	return app, events, recorder
}

func uploadRequest(t *testing.T, eventID, fileName, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("media", fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/album/"+eventID+"/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// Fiber, istek tamponlarını istekler arasında yeniden kullanır. Yanıt
// döndükten sonra çalışan senkronizasyon yine de dosyayı kendi etkinliğine
// eşlemelidir.
func TestUploadSyncKeepsEventAttribution(t *testing.T) {
	app, events, recorder := newTestApp(t, 32<<20)

	firstID := uuid.NewString()
	secondID := uuid.NewString()
	require.NoError(t, events.Create(firstID))
	require.NoError(t, events.Create(secondID))

	resp, err := app.Test(uploadRequest(t, firstID, "foto.jpg", "ilk"), 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp, err = app.Test(uploadRequest(t, secondID, "foto.jpg", "ikinci"), 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	close(recorder.release)

	var seen []string
	for len(seen) < 2 {
		select {
		case id := <-recorder.synced:
			seen = append(seen, id)
		case <-time.After(2 * time.Second):
			t.Fatalf("senkronizasyon çağrıları eksik: %v", seen)
		}
	}
	assert.ElementsMatch(t, []string{firstID, secondID}, seen)
}

// Gövde sınırını aşan istek, hiçbir dosya diske değmeden reddedilir.
func TestUploadOverBodyLimitWritesNothing(t *testing.T) {
	app, events, recorder := newTestApp(t, 1024)

	eventID := uuid.NewString()
	require.NoError(t, events.Create(eventID))

	resp, err := app.Test(uploadRequest(t, eventID, "video.mp4", strings.Repeat("a", 8192)), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	root, err := events.RequireRoot(eventID)
	require.NoError(t, err)
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)

	close(recorder.release)
	select {
	case id := <-recorder.synced:
		t.Fatalf("reddedilen istek için senkronizasyon tetiklendi: %s", id)
	case <-time.After(200 * time.Millisecond):
	}
}
