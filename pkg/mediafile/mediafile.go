// Package mediafile misafirlerden gelen dosya adlarının doğrulanması ve
// güvenli hale getirilmesi için yardımcılar içerir. Kontrol yalnızca uzantı
// bazlıdır; içerik (magic byte) doğrulaması bilinçli olarak yapılmaz.
package mediafile

import "strings"

// IsAllowed dosya adında nokta olup olmadığına ve son noktadan sonraki
// küçük harfe çevrilmiş uzantının izin listesinde bulunmasına bakar.
func IsAllowed(filename string, allowed []string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	ext := strings.ToLower(filename[i+1:])
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// Sanitize istemciden gelen dosya adını dosya sistemine doğrudan yazılabilir
// hale getirir: dizin bileşenleri atılır, güvensiz karakterler alt çizgiye
// çevrilir, ".." dizileri ve baştaki nokta/tire temizlenir. Boş sonuç
// "dosya verilmedi" anlamına gelir, hata değildir.
func Sanitize(filename string) string {
	// Hem Unix hem Windows ayracından sonraki son bileşeni al.
	if i := strings.LastIndexAny(filename, "/\\"); i >= 0 {
		filename = filename[i+1:]
	}

	var b strings.Builder
	b.Grow(len(filename))
	lastUnderscore := false
	for _, r := range filename {
		safe := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_'
		if safe {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		// Güvensiz karakter dizilerini tek alt çizgiye indir.
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := b.String()

	// Ayraçlar zaten atıldı; kalan ".." kalıntıları da üst dizine çıkamaz
	// ama "." ve ".." adlarının kendisi dosya adı olamaz.
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	name = strings.TrimLeft(name, "._-")
	name = strings.TrimRight(name, "_-")
	if name == "." {
		return ""
	}
	return name
}
