package mediafile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allowed = []string{"png", "jpg", "jpeg", "gif", "mp4", "mov", "avi", "webm"}

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{"png küçük harf", "foto.png", true},
		{"jpg", "foto.jpg", true},
		{"jpeg", "foto.jpeg", true},
		{"gif", "animasyon.gif", true},
		{"mp4", "video.mp4", true},
		{"mov", "video.mov", true},
		{"avi", "video.avi", true},
		{"webm", "video.webm", true},
		{"büyük harf uzantı", "FOTO.PNG", true},
		{"karışık harf", "Video.Mp4", true},
		{"birden çok nokta", "tatil.2024.son.jpg", true},
		{"uzantı yok", "dosya", false},
		{"sadece nokta", "dosya.", false},
		{"izin verilmeyen uzantı", "belge.pdf", false},
		{"çalıştırılabilir", "zarar.exe", false},
		{"boş ad", "", false},
		{"uzantı gibi görünen ad", "png", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowed(tt.filename, allowed))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"düz ad", "foto.jpg", "foto.jpg"},
		{"boşluklu ad", "tatil foto.jpg", "tatil_foto.jpg"},
		{"unix traversal", "../../etc/passwd", "passwd"},
		{"windows traversal", "..\\..\\windows\\system32\\cmd.exe", "cmd.exe"},
		{"mutlak yol", "/etc/shadow", "shadow"},
		{"gömülü ayraç", "a/b/c.png", "c.png"},
		{"gizli dosya", ".gitignore", "gitignore"},
		{"çift nokta adı", "..", ""},
		{"tek nokta adı", ".", ""},
		{"boş", "", ""},
		{"türkçe karakterler", "düğün.jpg", "d_n.jpg"},
		{"güvensiz dizi tek alt çizgi", "a!!!b.png", "a_b.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.filename))
		})
	}
}

func TestSanitizeNeverEscapes(t *testing.T) {
	inputs := []string{
		"../../etc/passwd",
		"..\\..\\x.png",
		"/abs/path/../x",
		"a/../../b.jpg",
		"....//....//etc/passwd",
	}
	for _, in := range inputs {
		got := Sanitize(in)
		assert.NotContains(t, got, "/", "girdi: %s", in)
		assert.NotContains(t, got, "\\", "girdi: %s", in)
		assert.NotContains(t, got, "..", "girdi: %s", in)
		assert.False(t, strings.HasPrefix(got, "."), "girdi: %s", in)
	}
}
