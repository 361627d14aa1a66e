// Package flashmessages session üzerinde tek seferlik (flash) mesaj taşır.
// Mesaj bir sonraki sayfa gösteriminde okunur ve session'dan silinir.
package flashmessages

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
)

// FlashData bir sayfa gösterimi için okunmuş flash mesajları.
type FlashData struct {
	Success string
	Error   string
}

var ErrNoSessionStore = errors.New("session store locals içinde bulunamadı")

func getSession(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrNoSessionStore
	}
	return store.Get(c)
}

// SetFlashMessage verilen anahtara bir flash mesajı yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages bekleyen flash mesajları okur ve session'dan temizler.
func GetFlashMessages(c *fiber.Ctx) (FlashData, error) {
	sess, err := getSession(c)
	if err != nil {
		return FlashData{}, err
	}
	data := FlashData{}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		data.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		data.Error = v
		sess.Delete(FlashErrorKey)
	}
	return data, sess.Save()
}
