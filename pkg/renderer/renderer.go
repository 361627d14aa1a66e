// Package renderer view render çağrılarını ve flash mesajların view
// verisine aktarılmasını tek noktada toplar.
package renderer

import (
	"anikutusu.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// View verisine konan flash anahtarları.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages okunmuş flash mesajları render verisine ekler.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashData) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render verilen template'i layout ile render eder. Opsiyonel son parametre
// HTTP durum kodudur.
func Render(c *fiber.Ctx, template, layout string, data fiber.Map, status ...int) error {
	if len(status) > 0 {
		c.Status(status[0])
	}
	return c.Render(template, data, layout)
}
