package engine

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/abhisek/quizlab/internal/quiz"
)

// ProgressKey is the well-known snapshot key for the in-flight session.
const ProgressKey = "quiz_progress"

// ProgressStore is the narrow keyed snapshot store the engine persists
// through. Load returns (nil, nil) when no snapshot exists.
type ProgressStore interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Clear(key string) error
}

// Snapshot is the serialized form of a running session. The fingerprint
// binds it to the exact task id set it was taken against; a snapshot for a
// different set is stale and must not be restored.
type Snapshot struct {
	Pool        []quiz.Task `json:"pool"`
	CurrentTask *quiz.Task  `json:"currentTask,omitempty"`
	Checked     bool        `json:"checked"`
	Won         bool        `json:"won"`
	Started     bool        `json:"started"`
	Ended       bool        `json:"ended"`
	FreeText    string      `json:"freeText"`
	Score       int         `json:"score"`
	LearntIDs   []string    `json:"learntIds"`
	Correct     int         `json:"correct"`
	Incorrect   int         `json:"incorrect"`
	Fingerprint string      `json:"fingerprint"`
}

// Snap captures the session for persistence.
func Snap(s State) Snapshot {
	learnt := make([]string, 0, len(s.Learnt))
	for id := range s.Learnt {
		learnt = append(learnt, id)
	}
	sort.Strings(learnt)
	return Snapshot{
		Pool:        s.Pool,
		CurrentTask: s.Current,
		Checked:     s.Checked,
		Won:         s.RoundWon,
		Started:     s.Started,
		Ended:       s.Ended,
		FreeText:    s.OpenAnswer,
		Score:       s.OpenScore,
		LearntIDs:   learnt,
		Correct:     s.Correct,
		Incorrect:   s.Incorrect,
		Fingerprint: quiz.Fingerprint(s.Tasks),
	}
}

// SaveProgress writes the session snapshot under ProgressKey.
func SaveProgress(st ProgressStore, s State) error {
	data, err := json.Marshal(Snap(s))
	if err != nil {
		return fmt.Errorf("marshal progress snapshot: %w", err)
	}
	if err := st.Save(ProgressKey, data); err != nil {
		return fmt.Errorf("save progress snapshot: %w", err)
	}
	return nil
}

// LoadProgress returns the stored snapshot when one exists and its
// fingerprint matches the given task set. A stale snapshot is cleared and
// reported as absent, so the caller starts a fresh session.
func LoadProgress(st ProgressStore, tasks []quiz.Task) (*Snapshot, error) {
	data, err := st.Load(ProgressKey)
	if err != nil {
		return nil, fmt.Errorf("load progress snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt snapshot is treated like a stale one.
		_ = st.Clear(ProgressKey)
		return nil, nil
	}
	if snap.Fingerprint != quiz.Fingerprint(tasks) {
		_ = st.Clear(ProgressKey)
		return nil, nil
	}
	return &snap, nil
}

// ClearProgress discards the stored session, if any.
func ClearProgress(st ProgressStore) error {
	return st.Clear(ProgressKey)
}

// Restore rebuilds a State from a snapshot over the same canonical tasks the
// snapshot was validated against.
func Restore(snap Snapshot, tasks []quiz.Task) State {
	learnt := make(map[string]bool, len(snap.LearntIDs))
	for _, id := range snap.LearntIDs {
		learnt[id] = true
	}
	return State{
		Tasks:      tasks,
		Pool:       snap.Pool,
		Current:    snap.CurrentTask,
		Checked:    snap.Checked,
		RoundWon:   snap.Won,
		Started:    snap.Started,
		Ended:      snap.Ended,
		OpenAnswer: snap.FreeText,
		OpenScore:  snap.Score,
		Learnt:     learnt,
		Correct:    snap.Correct,
		Incorrect:  snap.Incorrect,
	}
}
