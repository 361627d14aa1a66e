package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// HandshakeStore devam eden yetkilendirme el sıkışmalarını etkinlikle
// eşleştirir. State token tek kullanımlıktır ve TTL süresi sonunda geçersiz
// olur; bilinmeyen veya süresi geçmiş state callback'in reddedilmesi demektir.
type HandshakeStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]handshakeEntry
	now     func() time.Time // test için
}

type handshakeEntry struct {
	eventID   string
	expiresAt time.Time
}

// NewHandshakeStore verilen TTL ile yeni bir HandshakeStore oluşturur.
func NewHandshakeStore(ttl time.Duration) *HandshakeStore {
	return &HandshakeStore{
		ttl:     ttl,
		entries: make(map[string]handshakeEntry),
		now:     time.Now,
	}
}

// Begin etkinlik için yeni bir state token üretir ve kaydeder.
func (s *HandshakeStore) Begin(eventID string) string {
	state := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.entries[state] = handshakeEntry{
		// Çağıran istek tamponundan bir dilim geçirebilir; kayıt isteği
		// aşar, kopyasını sakla.
		eventID:   strings.Clone(eventID),
		expiresAt: s.now().Add(s.ttl),
	}
	return state
}

// Consume state token'ı doğrular, eşleşen etkinlik kimliğini döner ve
// kaydı siler. Token bilinmiyorsa veya süresi geçmişse ok=false döner.
func (s *HandshakeStore) Consume(state string) (eventID string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, exists := s.entries[state]
	if !exists {
		return "", false
	}
	delete(s.entries, state)
	if s.now().After(entry.expiresAt) {
		return "", false
	}
	return entry.eventID, true
}

// prune süresi geçmiş kayıtları temizler. Kilit alınmışken çağrılır.
func (s *HandshakeStore) prune() {
	now := s.now()
	for state, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, state)
		}
	}
}
