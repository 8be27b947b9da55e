package gamification

import (
	"encoding/json"
	"fmt"
	"time"
)

// StatsKey is the snapshot key for the cumulative player stats.
const StatsKey = "gamification_stats"

// SchemaVersion guards the persisted layout. A snapshot with a different
// version is discarded rather than half-read.
const SchemaVersion = 1

// StatsStore is the keyed snapshot store the stats persist through. Load
// returns (nil, nil) when no snapshot exists.
type StatsStore interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Clear(key string) error
}

type persistedStats struct {
	Version   int       `json:"version"`
	UserStats UserStats `json:"userStats"`
}

// SaveStats writes the cumulative stats under StatsKey.
func SaveStats(st StatsStore, user UserStats) error {
	data, err := json.Marshal(persistedStats{Version: SchemaVersion, UserStats: user})
	if err != nil {
		return fmt.Errorf("marshal gamification stats: %w", err)
	}
	if err := st.Save(StatsKey, data); err != nil {
		return fmt.Errorf("save gamification stats: %w", err)
	}
	return nil
}

// LoadStats reads the cumulative stats, returning a fresh record when no
// snapshot exists or the stored one has a different schema version.
func LoadStats(st StatsStore, now time.Time) (UserStats, error) {
	data, err := st.Load(StatsKey)
	if err != nil {
		return UserStats{}, fmt.Errorf("load gamification stats: %w", err)
	}
	if data == nil {
		return NewUserStats(now), nil
	}
	var stored persistedStats
	if err := json.Unmarshal(data, &stored); err != nil {
		return NewUserStats(now), nil
	}
	if stored.Version != SchemaVersion {
		return NewUserStats(now), nil
	}
	return stored.UserStats, nil
}
