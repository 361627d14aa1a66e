package configs

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

// SetupSession flash mesajlar için kullanılan session store'u oluşturur.
// Kalıcılık gerekmez; bellek içi store yeterlidir.
func SetupSession() *session.Store {
	return session.New(session.Config{
		Expiration:     2 * time.Hour,
		KeyLookup:      "cookie:anikutusu_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}
