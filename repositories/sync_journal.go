package repositories

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"anikutusu.link/configs/configslog"
	"anikutusu.link/models"

	"go.uber.org/zap"
)

const journalFileName = "sync_journal.jsonl"

// ISyncJournal etkinlik başına senkronizasyon sonuçlarının kalıcı kaydı.
// Her deneme (skipped dahil) bir JSON satırı olarak eklenir.
type ISyncJournal interface {
	Append(eventID string, rec models.SyncRecord) error
	List(eventID string) ([]models.SyncRecord, error)
}

// SyncJournal ISyncJournal arayüzünü etkinlik kökünde JSONL dosyası ile uygular.
type SyncJournal struct {
	events IEventRepository
}

// NewSyncJournal yeni bir SyncJournal oluşturur.
func NewSyncJournal(events IEventRepository) *SyncJournal {
	return &SyncJournal{events: events}
}

// Append bir senkronizasyon kaydını jurnale ekler.
func (j *SyncJournal) Append(eventID string, rec models.SyncRecord) error {
	root, err := j.events.RequireRoot(eventID)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(root, journalFileName),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}

// List jurnaldeki kayıtları sırasıyla döner. Jurnal yoksa boş liste döner.
// Bozuk satırlar loglanıp atlanır; jurnal gözlemlenebilirlik içindir,
// tek bozuk satır tamamını kullanılmaz yapmamalı.
func (j *SyncJournal) List(eventID string) ([]models.SyncRecord, error) {
	root, err := j.events.RequireRoot(eventID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(root, journalFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.SyncRecord{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []models.SyncRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec models.SyncRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			configslog.Log.Warn("SyncJournal.List: bozuk jurnal satırı atlandı",
				zap.String("eventID", eventID), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.SyncRecord{}
	}
	return records, nil
}

var _ ISyncJournal = (*SyncJournal)(nil)
