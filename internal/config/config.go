// Package config holds the user-tunable quiz settings, persisted in the
// store and overridable from the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/quizlab/internal/engine"
	"github.com/abhisek/quizlab/internal/questiongen"
)

// SettingsKey is the snapshot-store key settings persist under.
const SettingsKey = "settings"

// Settings is everything the user can tune: how the pool behaves and how
// questions are generated.
type Settings struct {
	ClosedQuestions      int  `json:"amountOfClosedQuestions"`
	OpenQuestions        int  `json:"amountOfOpenQuestions"`
	AllowMultipleCorrect bool `json:"allowMultipleCorrectAnswers"`
	ForceMultipleCorrect bool `json:"forceMultipleCorrectAnswers"`

	DefaultPoolSize      int `json:"defaultPoolSize"`
	FailedOriginalCopies int `json:"failedOriginalCopies"`
	FailedRetryCopies    int `json:"failedRetryCopies"`

	ContentFocus       questiongen.ContentFocus `json:"contentFocus"`
	DifficultyLevel    questiongen.Difficulty   `json:"difficultyLevel"`
	QuestionStyle      questiongen.Style        `json:"questionStyle"`
	CustomInstructions string                   `json:"customInstructions"`
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() Settings {
	return Settings{
		ClosedQuestions:      2,
		OpenQuestions:        1,
		DefaultPoolSize:      2,
		FailedOriginalCopies: 3,
		FailedRetryCopies:    2,
		ContentFocus:         questiongen.FocusImportant,
		DifficultyLevel:      questiongen.DifficultyMixed,
		QuestionStyle:        questiongen.StyleConceptual,
	}
}

// EngineConfig maps the pool settings onto the session engine config.
func (s Settings) EngineConfig() engine.Config {
	return engine.Config{
		PoolSize:             s.DefaultPoolSize,
		FailedOriginalCopies: s.FailedOriginalCopies,
		FailedRetryCopies:    s.FailedRetryCopies,
	}
}

// Generation maps the question settings onto a generation run.
func (s Settings) Generation() questiongen.Settings {
	return questiongen.Settings{
		OpenCount:            s.OpenQuestions,
		ClosedCount:          s.ClosedQuestions,
		AllowMultipleCorrect: s.AllowMultipleCorrect,
		ForceMultipleCorrect: s.ForceMultipleCorrect,
		ContentFocus:         s.ContentFocus,
		Difficulty:           s.DifficultyLevel,
		Style:                s.QuestionStyle,
		CustomInstructions:   s.CustomInstructions,
	}.Normalize()
}

// Store is the narrow persistence surface settings need.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}

// Load reads settings from the store, falling back to defaults when absent
// or unreadable, then applies environment overrides.
func Load(st Store) Settings {
	s := DefaultSettings()

	data, err := st.Load(SettingsKey)
	if err == nil && data != nil {
		var stored Settings
		if json.Unmarshal(data, &stored) == nil {
			s = stored
		}
	}

	return s.withEnvOverrides().normalized()
}

// Save persists settings to the store.
func Save(st Store, s Settings) error {
	data, err := json.Marshal(s.normalized())
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := st.Save(SettingsKey, data); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

func (s Settings) withEnvOverrides() Settings {
	if n, ok := envInt("QUIZLAB_POOL_SIZE"); ok {
		s.DefaultPoolSize = n
	}
	if n, ok := envInt("QUIZLAB_FAILED_ORIGINAL_COPIES"); ok {
		s.FailedOriginalCopies = n
	}
	if n, ok := envInt("QUIZLAB_FAILED_RETRY_COPIES"); ok {
		s.FailedRetryCopies = n
	}
	if n, ok := envInt("QUIZLAB_CLOSED_QUESTIONS"); ok {
		s.ClosedQuestions = n
	}
	if n, ok := envInt("QUIZLAB_OPEN_QUESTIONS"); ok {
		s.OpenQuestions = n
	}
	return s
}

// normalized clamps numeric settings to sane bounds. Counter clamping
// itself lives in the engine; this just keeps stored values honest.
func (s Settings) normalized() Settings {
	if s.DefaultPoolSize < 1 {
		s.DefaultPoolSize = 1
	}
	if s.FailedOriginalCopies < 0 {
		s.FailedOriginalCopies = 0
	}
	if s.FailedRetryCopies < 0 {
		s.FailedRetryCopies = 0
	}
	if s.ClosedQuestions < 0 {
		s.ClosedQuestions = 0
	}
	if s.OpenQuestions < 0 {
		s.OpenQuestions = 0
	}
	if s.ContentFocus == "" {
		s.ContentFocus = questiongen.FocusImportant
	}
	if s.DifficultyLevel == "" {
		s.DifficultyLevel = questiongen.DifficultyMixed
	}
	if s.QuestionStyle == "" {
		s.QuestionStyle = questiongen.StyleConceptual
	}
	return s
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
