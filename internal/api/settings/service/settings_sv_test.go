package settingsService

import (
	"VoiceERP/internal/api/settings"
	settingsRepository "VoiceERP/internal/api/settings/repository"
	"VoiceERP/internal/entity"
	redisPkg "VoiceERP/pkg/redis"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsStore struct {
	mu      sync.Mutex
	byUser  map[string]entity.VoiceSettings
	creates int
	updates int
}

func (f *fakeSettingsStore) CreateSettings(_ context.Context, s entity.VoiceSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser[s.UserID] = s
	f.creates++
	return nil
}

func (f *fakeSettingsStore) GetSettingsByUserID(_ context.Context, userID string) (entity.VoiceSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved, ok := f.byUser[userID]
	if !ok {
		return entity.VoiceSettings{}, settings.ErrSettingsNotFound
	}
	return saved, nil
}

func (f *fakeSettingsStore) UpdateSettings(_ context.Context, s entity.VoiceSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byUser[s.UserID]; !ok {
		return settings.ErrSettingsNotFound
	}
	f.byUser[s.UserID] = s
	f.updates++
	return nil
}

type fakeSettingsRepo struct {
	store *fakeSettingsStore
}

func (f *fakeSettingsRepo) NewClient(tx bool) (settingsRepository.Client, error) {
	return settingsRepository.Client{
		Settings: f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeRedis struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes []string
}

func (f *fakeRedis) SetJSON(_ context.Context, key string, payload []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = payload
	return nil
}

func (f *fakeRedis) GetJSON(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.data[key]
	if !ok {
		return nil, redisPkg.ErrCacheMiss
	}
	return payload, nil
}

func (f *fakeRedis) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.deletes = append(f.deletes, key)
	return nil
}

type fakeUtils struct{}

func (fakeUtils) NewULIDFromTimestamp(t time.Time) (string, error) {
	return "01SETTINGSID", nil
}

func newTestService() (ISettingsService, *fakeSettingsStore, *fakeRedis) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := &fakeSettingsStore{byUser: map[string]entity.VoiceSettings{}}
	cache := &fakeRedis{data: map[string][]byte{}}

	return New(logger, &fakeSettingsRepo{store: store}, cache, fakeUtils{}), store, cache
}

func TestResolveSettingsDefaults(t *testing.T) {
	svc, _, _ := newTestService()

	resolved, err := svc.ResolveSettings(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "Hey ERP", resolved.WakeWord)
	assert.Equal(t, 7, resolved.Sensitivity)
	assert.True(t, resolved.VoiceResponse)
	assert.False(t, resolved.ContinuousListening)
	assert.Equal(t, "en-US", resolved.VoiceLanguage)
}

func TestResolveSettingsCachesResult(t *testing.T) {
	svc, _, cache := newTestService()

	_, err := svc.ResolveSettings(context.Background(), "u1")
	require.NoError(t, err)

	cache.mu.Lock()
	_, cached := cache.data["voice_settings:u1"]
	cache.mu.Unlock()
	assert.True(t, cached)
}

func TestUpdateSettingsCreatesOnFirstSave(t *testing.T) {
	svc, store, _ := newTestService()

	wakeWord := "Computer"
	res, err := svc.UpdateSettings(context.Background(), "u1", settings.UpdateSettingsRequest{
		WakeWord: &wakeWord,
	})
	require.NoError(t, err)

	assert.Equal(t, "Computer", res.WakeWord)
	assert.Equal(t, 7, res.Sensitivity, "unset fields keep their defaults")
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 0, store.updates)
}

func TestUpdateSettingsPartialUpdate(t *testing.T) {
	svc, store, cache := newTestService()

	sensitivity := 3
	_, err := svc.UpdateSettings(context.Background(), "u1", settings.UpdateSettingsRequest{
		Sensitivity: &sensitivity,
	})
	require.NoError(t, err)

	continuous := true
	res, err := svc.UpdateSettings(context.Background(), "u1", settings.UpdateSettingsRequest{
		ContinuousListening: &continuous,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Sensitivity, "earlier update survives")
	assert.True(t, res.ContinuousListening)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 1, store.updates)
	assert.Contains(t, cache.deletes, "voice_settings:u1")
}

func TestUpdateSettingsRejectsBadSensitivity(t *testing.T) {
	svc, _, _ := newTestService()

	sensitivity := 11
	_, err := svc.UpdateSettings(context.Background(), "u1", settings.UpdateSettingsRequest{
		Sensitivity: &sensitivity,
	})
	assert.ErrorIs(t, err, settings.ErrInvalidSensitivity)
}
