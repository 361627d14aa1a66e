package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"anikutusu.link/configs"
	"anikutusu.link/models"
	"anikutusu.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// --- test yardımcıları (paket genelinde kullanılır) ---

func testConfig(t *testing.T) *configs.Config {
	t.Helper()
	return &configs.Config{
		BaseURL:           "http://ornek.test",
		UploadRoot:        t.TempDir(),
		BackgroundRoot:    t.TempDir(),
		MaxUploadBytes:    32 << 20,
		AllowedExtensions: configs.DefaultExtensions,
		HandshakeTTL:      time.Minute,
	}
}

// makeFileHeader gerçek bir multipart form üzerinden FileHeader üretir.
func makeFileHeader(t *testing.T, fileName, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("media", fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	files := form.File["media"]
	require.Len(t, files, 1)
	return files[0]
}

// syncStub ISyncService'in kayıt tutan sahte uygulaması.
type syncStub struct {
	mu    sync.Mutex
	calls []string
	done  chan string
}

func newSyncStub() *syncStub {
	return &syncStub{done: make(chan string, 16)}
}

func (s *syncStub) Enabled() bool            { return false }
func (s *syncStub) AuthURL(string) string    { return "" }
func (s *syncStub) ExchangeCode(context.Context, string) (*oauth2.Token, error) {
	return nil, ErrSyncDisabled
}
func (s *syncStub) SaveCredential(string, *oauth2.Token) error { return nil }
func (s *syncStub) HasCredential(string) (bool, error)         { return false, nil }

func (s *syncStub) TrySync(_ context.Context, _, _, displayName string) models.SyncOutcome {
	s.mu.Lock()
	s.calls = append(s.calls, displayName)
	s.mu.Unlock()
	s.done <- displayName
	return models.SyncOutcome{Status: models.SyncSkipped}
}

func newTestUploadService(t *testing.T) (*UploadService, *repositories.EventRepository, *syncStub) {
	t.Helper()
	cfg := testConfig(t)
	events := repositories.NewEventRepository(cfg.UploadRoot, cfg.BackgroundRoot)
	stub := newSyncStub()
	return NewUploadService(cfg, events, stub), events, stub
}

// --- testler ---

func TestSaveBatchMixedFilesIsSuccess(t *testing.T) {
	svc, events, _ := newTestUploadService(t)
	require.NoError(t, events.Create("e1"))

	files := []*multipart.FileHeader{
		makeFileHeader(t, "foto.jpg", "resim verisi"),
		makeFileHeader(t, "belge.pdf", "pdf verisi"),
	}
	result, err := svc.SaveBatch("e1", files)
	require.NoError(t, err)

	// Kısmen başarısız batch yine de başarıdır.
	assert.True(t, result.Success)
	require.Len(t, result.Files, 2)
	assert.Equal(t, models.FileSaved, result.Files[0].Status)
	assert.Equal(t, "foto.jpg", result.Files[0].StoredName)
	assert.Equal(t, models.FileRejected, result.Files[1].Status)

	root, err := events.RequireRoot("e1")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "foto.jpg"))
	assert.NoFileExists(t, filepath.Join(root, "belge.pdf"))
}

func TestSaveBatchAllInvalidIsFailure(t *testing.T) {
	svc, events, _ := newTestUploadService(t)
	require.NoError(t, events.Create("e1"))

	files := []*multipart.FileHeader{
		makeFileHeader(t, "belge.pdf", "pdf"),
		makeFileHeader(t, "uzantisiz", "veri"),
	}
	result, err := svc.SaveBatch("e1", files)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestSaveBatchEmptyIsFailure(t *testing.T) {
	svc, events, _ := newTestUploadService(t)
	require.NoError(t, events.Create("e1"))

	result, err := svc.SaveBatch("e1", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, result.Files)
}

func TestSaveBatchUnknownEvent(t *testing.T) {
	svc, _, _ := newTestUploadService(t)

	_, err := svc.SaveBatch("yok", []*multipart.FileHeader{makeFileHeader(t, "a.jpg", "x")})
	assert.ErrorIs(t, err, ErrUploadEventNotFound)
}

func TestSaveBatchSanitizesStoredName(t *testing.T) {
	svc, events, _ := newTestUploadService(t)
	require.NoError(t, events.Create("e1"))

	result, err := svc.SaveBatch("e1", []*multipart.FileHeader{
		makeFileHeader(t, "tatil foto.jpg", "veri"),
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "tatil_foto.jpg", result.Files[0].StoredName)

	root, err := events.RequireRoot("e1")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "tatil_foto.jpg"))
}

func TestSaveBatchOverwriteLastWriterWins(t *testing.T) {
	svc, events, _ := newTestUploadService(t)
	require.NoError(t, events.Create("e1"))

	_, err := svc.SaveBatch("e1", []*multipart.FileHeader{makeFileHeader(t, "foto.jpg", "ilk içerik")})
	require.NoError(t, err)
	_, err = svc.SaveBatch("e1", []*multipart.FileHeader{makeFileHeader(t, "foto.jpg", "ikinci içerik")})
	require.NoError(t, err)

	root, err := events.RequireRoot("e1")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, "foto.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "ikinci içerik", string(data))
}

func TestSaveBatchKicksOffSyncAfterLocalSave(t *testing.T) {
	svc, events, stub := newTestUploadService(t)
	require.NoError(t, events.Create("e1"))

	_, err := svc.SaveBatch("e1", []*multipart.FileHeader{makeFileHeader(t, "foto.jpg", "veri")})
	require.NoError(t, err)

	select {
	case name := <-stub.done:
		assert.Equal(t, "foto.jpg", name)
	case <-time.After(2 * time.Second):
		t.Fatal("senkronizasyon tetiklenmedi")
	}
}

func TestSaveBatchRejectedFileDoesNotTriggerSync(t *testing.T) {
	svc, events, stub := newTestUploadService(t)
	require.NoError(t, events.Create("e1"))

	_, err := svc.SaveBatch("e1", []*multipart.FileHeader{makeFileHeader(t, "belge.pdf", "veri")})
	require.NoError(t, err)

	select {
	case name := <-stub.done:
		t.Fatalf("reddedilen dosya için senkronizasyon tetiklendi: %s", name)
	case <-time.After(200 * time.Millisecond):
	}
}
