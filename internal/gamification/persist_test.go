package gamification

import (
	"encoding/json"
	"testing"
	"time"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Load(key string) ([]byte, error)    { return m.data[key], nil }
func (m *memStore) Save(key string, data []byte) error { m.data[key] = data; return nil }
func (m *memStore) Clear(key string) error             { delete(m.data, key); return nil }

func TestStats_RoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(NewUserStats(now), func() time.Time { return now })
	tr.RecordAnswer("q", true, 2*time.Second, false)
	tr.RecordLearnt("q", 1)

	st := newMemStore()
	if err := SaveStats(st, tr.User); err != nil {
		t.Fatalf("SaveStats() error = %v", err)
	}

	loaded, err := LoadStats(st, now)
	if err != nil {
		t.Fatalf("LoadStats() error = %v", err)
	}
	if loaded.TotalPoints != tr.User.TotalPoints {
		t.Errorf("TotalPoints = %d, want %d", loaded.TotalPoints, tr.User.TotalPoints)
	}
	if len(loaded.UnlockedAchievements) != len(tr.User.UnlockedAchievements) {
		t.Errorf("unlocked = %d entries, want %d",
			len(loaded.UnlockedAchievements), len(tr.User.UnlockedAchievements))
	}
	if loaded.AllTimeBestTime == nil || *loaded.AllTimeBestTime != 2*time.Second {
		t.Errorf("AllTimeBestTime = %v, want 2s", loaded.AllTimeBestTime)
	}
}

func TestLoadStats_EmptyStoreReturnsFresh(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stats, err := LoadStats(newMemStore(), now)
	if err != nil {
		t.Fatalf("LoadStats() error = %v", err)
	}
	if stats.TotalPoints != 0 || len(stats.UnlockedAchievements) != 0 {
		t.Error("fresh stats not zeroed")
	}
	if !stats.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", stats.CreatedAt, now)
	}
}

func TestLoadStats_VersionMismatchDiscarded(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := newMemStore()
	data, _ := json.Marshal(persistedStats{
		Version:   99,
		UserStats: UserStats{TotalPoints: 1234},
	})
	st.data[StatsKey] = data

	stats, err := LoadStats(st, now)
	if err != nil {
		t.Fatalf("LoadStats() error = %v", err)
	}
	if stats.TotalPoints != 0 {
		t.Error("stats from a foreign schema version were not discarded")
	}
}

func TestLoadStats_CorruptDataDiscarded(t *testing.T) {
	st := newMemStore()
	st.data[StatsKey] = []byte("{broken")
	stats, err := LoadStats(st, time.Now())
	if err != nil {
		t.Fatalf("LoadStats() error = %v", err)
	}
	if stats.TotalPoints != 0 {
		t.Error("corrupt stats were not discarded")
	}
}
