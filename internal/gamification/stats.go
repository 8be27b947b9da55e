package gamification

import "time"

// UnlockedAchievement records when a rule unlocked, persisted with the
// cumulative stats.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// UserStats is the cumulative, persisted player record.
type UserStats struct {
	TotalPoints            int                   `json:"totalPoints"`
	CurrentStreak          int                   `json:"currentStreak"`
	BestStreak             int                   `json:"bestStreak"`
	TotalQuizzesCompleted  int                   `json:"totalQuizzesCompleted"`
	TotalQuestionsAnswered int                   `json:"totalQuestionsAnswered"`
	TotalCorrectAnswers    int                   `json:"totalCorrectAnswers"`
	TotalIncorrectAnswers  int                   `json:"totalIncorrectAnswers"`
	AllTimeBestTime        *time.Duration        `json:"allTimeBestTime"`
	UnlockedAchievements   []UnlockedAchievement `json:"unlockedAchievements"`
	CreatedAt              time.Time             `json:"createdAt"`
	LastPlayedAt           time.Time             `json:"lastPlayedAt"`
}

func (u UserStats) unlockedSet() map[string]bool {
	m := make(map[string]bool, len(u.UnlockedAchievements))
	for _, a := range u.UnlockedAchievements {
		m[a.ID] = true
	}
	return m
}

// HasUnlocked reports whether the given achievement id is unlocked.
func (u UserStats) HasUnlocked(id string) bool {
	for _, a := range u.UnlockedAchievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// TimeStats tracks per-session answer timing.
type TimeStats struct {
	LastQuestionTime *time.Duration `json:"lastQuestionTime"`
	AverageTime      time.Duration  `json:"averageTime"`
	BestTime         *time.Duration `json:"bestTime"`
	TotalQuizTime    time.Duration  `json:"totalQuizTime"`
	QuestionsTimed   int            `json:"questionsTimed"`
}

// record folds one answer time into the running stats. Best time only moves
// on correct answers.
func (t TimeStats) record(elapsed time.Duration, correct bool) TimeStats {
	t.LastQuestionTime = &elapsed
	t.TotalQuizTime += elapsed
	t.QuestionsTimed++
	t.AverageTime = (t.AverageTime*time.Duration(t.QuestionsTimed-1) + elapsed) / time.Duration(t.QuestionsTimed)
	if correct && (t.BestTime == nil || elapsed < *t.BestTime) {
		e := elapsed
		t.BestTime = &e
	}
	return t
}

// SessionStats is the per-quiz scratch record, never persisted.
type SessionStats struct {
	SessionStreak     int
	SessionPoints     int
	SessionCorrect    int
	SessionIncorrect  int
	QuestionsAnswered int
	FastAnswersInARow int
	TimeStats         TimeStats

	// failCounts tracks per-question failures this session, feeding the
	// comeback rule.
	failCounts map[string]int
}

// FailCount returns how many times the question failed this session.
func (s SessionStats) FailCount(questionID string) int {
	return s.failCounts[questionID]
}

func newSessionStats() SessionStats {
	return SessionStats{failCounts: map[string]int{}}
}

// NewUserStats returns the zero record for a first-time player.
func NewUserStats(now time.Time) UserStats {
	return UserStats{CreatedAt: now, LastPlayedAt: now}
}
