package models

// EventInfo bir etkinlik albümünün meta kaydıdır. Alanlar serbest metindir;
// tarih için format doğrulaması yapılmaz. Background, misafirin yüklediği
// orijinal ad değil, etkinlik kimliğiyle adlandırılmış üretilmiş dosya adıdır.
type EventInfo struct {
	Name       string
	Date       string
	Message    string
	Background string
}

// Event bir etkinliği kimliği ve meta bilgisiyle birlikte taşır.
// ID oluşturma sırasında üretilen UUID'dir, sonradan değişmez.
type Event struct {
	ID   string
	Info EventInfo
}

// UploadURL misafirlerin medya yüklediği public adresi döner.
func (e Event) UploadURL(baseURL string) string {
	return baseURL + "/album/" + e.ID + "/upload"
}
