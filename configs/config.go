package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"anikutusu.link/configs/configslog"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// Config uygulamanın tüm ayarlarını taşır. Global durum yerine main'de
// yüklenir ve her katmana constructor üzerinden verilir.
type Config struct {
	ListenAddr string
	BaseURL    string // Public URL (QR içine gömülen adresin kökü)

	UploadRoot     string // Etkinlik klasörlerinin kökü
	BackgroundRoot string // Arka plan görsellerinin ortak klasörü

	MaxUploadBytes    int           // Tek istekteki toplam gövde limiti
	AllowedExtensions []string      // Kabul edilen medya uzantıları (noktasız, küçük harf)
	HandshakeTTL      time.Duration // OAuth state token geçerlilik süresi

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// DefaultExtensions orijinal kabul listesi.
var DefaultExtensions = []string{"png", "jpg", "jpeg", "gif", "mp4", "mov", "avi", "webm"}

// LoadConfig .env dosyasını (varsa) ve ortam değişkenlerini okuyarak
// Config üretir. Zorunlu alan yoktur; Google ayarları boşsa harici
// senkronizasyon yetkilendirmesi başlatılamaz ama uygulama çalışır.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, ortam değişkenleri kullanılıyor")
	}

	cfg := &Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":3000"),
		BaseURL:            strings.TrimRight(getEnv("BASE_URL", "http://localhost:3000"), "/"),
		UploadRoot:         getEnv("UPLOAD_ROOT", "uploads"),
		BackgroundRoot:     getEnv("BACKGROUND_ROOT", "static/backgrounds"),
		MaxUploadBytes:     getEnvInt("MAX_UPLOAD_BYTES", 100*1024*1024),
		AllowedExtensions:  DefaultExtensions,
		HandshakeTTL:       time.Duration(getEnvInt("HANDSHAKE_TTL_SECONDS", 600)) * time.Second,
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
	}

	if exts := getEnv("ALLOWED_EXTENSIONS", ""); exts != "" {
		cfg.AllowedExtensions = splitAndClean(exts)
	}
	return cfg
}

// OAuthConfig Google Drive yetkilendirmesi için oauth2 yapılandırmasını döner.
// İstemci kimliği tanımlı değilse nil döner; senkronizasyon bu durumda kapalıdır.
func (c *Config) OAuthConfig() *oauth2.Config {
	if c.GoogleClientID == "" || c.GoogleClientSecret == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     c.GoogleClientID,
		ClientSecret: c.GoogleClientSecret,
		RedirectURL:  c.GoogleRedirectURL,
		Scopes:       []string{drive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		configslog.SLog.Warnf("%s için geçersiz sayı değeri, varsayılan kullanılıyor: %d", key, defaultValue)
	}
	return defaultValue
}

func splitAndClean(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, strings.TrimPrefix(p, "."))
		}
	}
	return out
}
