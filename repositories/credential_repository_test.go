package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCredentialSaveAndLoad(t *testing.T) {
	events := newTestEventRepo(t)
	require.NoError(t, events.Create("e1"))
	repo := NewCredentialRepository(events)

	token := &oauth2.Token{
		AccessToken:  "erisim-token",
		RefreshToken: "yenileme-token",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Save("e1", token))

	got, found, err := repo.Load("e1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, token.AccessToken, got.AccessToken)
	assert.Equal(t, token.RefreshToken, got.RefreshToken)
	assert.True(t, token.Expiry.Equal(got.Expiry))
}

func TestCredentialAbsentIsNotAnError(t *testing.T) {
	events := newTestEventRepo(t)
	require.NoError(t, events.Create("e1"))
	repo := NewCredentialRepository(events)

	got, found, err := repo.Load("e1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestCredentialOverwrite(t *testing.T) {
	events := newTestEventRepo(t)
	require.NoError(t, events.Create("e1"))
	repo := NewCredentialRepository(events)

	require.NoError(t, repo.Save("e1", &oauth2.Token{AccessToken: "ilk"}))
	require.NoError(t, repo.Save("e1", &oauth2.Token{AccessToken: "ikinci"}))

	got, found, err := repo.Load("e1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "ikinci", got.AccessToken)
}

func TestCredentialUnknownEvent(t *testing.T) {
	events := newTestEventRepo(t)
	repo := NewCredentialRepository(events)

	err := repo.Save("yok", &oauth2.Token{AccessToken: "x"})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, _, err = repo.Load("yok")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
