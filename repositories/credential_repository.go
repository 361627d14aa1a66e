package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

const credentialFileName = "gdrive_token.json"

// ICredentialRepository etkinlik başına harici yetkilendirme kimlik bilgisini
// saklar. Kimlik bilgisinin yokluğu hata değildir; senkronizasyonun kapalı
// olduğu olağan durumdur.
type ICredentialRepository interface {
	Save(eventID string, token *oauth2.Token) error
	Load(eventID string) (*oauth2.Token, bool, error)
}

// CredentialRepository kimlik bilgisini etkinlik kökünde JSON olarak tutar.
type CredentialRepository struct {
	events IEventRepository
}

// NewCredentialRepository yeni bir CredentialRepository oluşturur.
func NewCredentialRepository(events IEventRepository) *CredentialRepository {
	return &CredentialRepository{events: events}
}

// Save kimlik bilgisini yazar; mevcutsa üzerine yazılır (yeni yetkilendirme
// eskisinin yerini alır).
func (r *CredentialRepository) Save(eventID string, token *oauth2.Token) error {
	root, err := r.events.RequireRoot(eventID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("kimlik bilgisi serileştirilemedi: %w", err)
	}
	// Token hassas veridir; sadece sahibi okuyabilmeli.
	return os.WriteFile(filepath.Join(root, credentialFileName), data, 0o600)
}

// Load kimlik bilgisini döner. İkinci dönüş değeri kimlik bilgisinin var
// olup olmadığıdır; yokluk (nil, false, nil) olarak raporlanır.
func (r *CredentialRepository) Load(eventID string) (*oauth2.Token, bool, error) {
	root, err := r.events.RequireRoot(eventID)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(filepath.Join(root, credentialFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, false, fmt.Errorf("kimlik bilgisi çözümlenemedi: %w", err)
	}
	return &token, true, nil
}

var _ ICredentialRepository = (*CredentialRepository)(nil)
