package models

import "time"

// FileStatus tek bir dosyanın yükleme sonucu.
type FileStatus string

const (
	FileSaved    FileStatus = "saved"
	FileRejected FileStatus = "rejected"
)

// FileOutcome bir batch içindeki tek dosyanın sonucunu taşır.
type FileOutcome struct {
	OriginalName string
	StoredName   string // Sadece kaydedilen dosyalar için dolu
	Status       FileStatus
	Reason       string // Reddedilme nedeni (varsa)
}

// UploadResult bir isteğin toplam sonucudur. En az bir dosya kaydedildiyse
// Success true olur; kısmen başarısız batch yine de başarı sayılır.
type UploadResult struct {
	Files   []FileOutcome
	Success bool
}

// SyncStatus harici senkronizasyon denemesinin sonucu.
type SyncStatus string

const (
	SyncSkipped SyncStatus = "skipped" // Kimlik bilgisi yok, deneme yapılmadı
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// SyncOutcome tek bir dosyanın harici senkronizasyon denemesinin sonucu.
type SyncOutcome struct {
	Status   SyncStatus
	RemoteID string // Başarıda uzak nesne kimliği
	Cause    string // Başarısızlık nedeni
}

// SyncRecord jurnale yazılan kayıt; her deneme (skipped dahil) bir satırdır.
type SyncRecord struct {
	FileName  string     `json:"file_name"`
	Status    SyncStatus `json:"status"`
	RemoteID  string     `json:"remote_id,omitempty"`
	Cause     string     `json:"cause,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
