package gamification

import "time"

// Tracker orchestrates points, streaks, timing, and achievement unlocks for
// one player across quiz sessions. It is not safe for concurrent use; the
// single UI goroutine owns it.
type Tracker struct {
	User    UserStats
	Session SessionStats

	now       func() time.Time
	roundFrom time.Time
	timing    bool
}

// NewTracker wraps existing cumulative stats. clock may be nil for
// time.Now; tests inject a fixed clock.
func NewTracker(user UserStats, clock func() time.Time) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	return &Tracker{User: user, Session: newSessionStats(), now: clock}
}

// AnswerResult reports what one recorded answer earned.
type AnswerResult struct {
	Breakdown PointsBreakdown
	Unlocked  []Achievement
}

// LearntResult reports the mastery bonus and any unlocks it triggered.
type LearntResult struct {
	Bonus    int
	Unlocked []Achievement
}

// QuizResult reports the completion bonus and any unlocks it triggered.
type QuizResult struct {
	Bonus    int
	Accuracy float64
	Unlocked []Achievement
}

// StartSession resets the per-quiz stats and evaluates the time-of-day
// rules.
func (t *Tracker) StartSession() []Achievement {
	t.Session = newSessionStats()
	t.roundFrom = time.Time{}
	t.timing = false
	return t.unlock(checkAchievements(
		CheckContext{Type: EventSessionStart, Hour: t.now().Hour()},
		t.User, t.Session,
	))
}

// StartTimer marks the start of the current round.
func (t *Tracker) StartTimer() {
	t.roundFrom = t.now()
	t.timing = true
}

// StopTimer returns the elapsed round time, or zero when no round was being
// timed.
func (t *Tracker) StopTimer() time.Duration {
	if !t.timing {
		return 0
	}
	t.timing = false
	return t.now().Sub(t.roundFrom)
}

// RecordAnswer folds one answered round into the stats and returns the
// points earned plus any unlocked achievements. questionID feeds the
// per-question failure count behind the comeback rule.
func (t *Tracker) RecordAnswer(questionID string, correct bool, elapsed time.Duration, isRetry bool) AnswerResult {
	// Achievement conditions run against the pre-answer stats.
	preUser, preSession := t.User, t.Session

	streak := 0
	if correct {
		streak = t.Session.SessionStreak + 1
	}
	breakdown := CalculatePoints(correct, elapsed, streak, isRetry)

	t.Session.QuestionsAnswered++
	t.Session.TimeStats = t.Session.TimeStats.record(elapsed, correct)
	t.User.TotalQuestionsAnswered++
	t.User.LastPlayedAt = t.now()

	var unlocked []Achievement
	if correct {
		t.Session.SessionCorrect++
		t.Session.SessionStreak = streak
		if elapsed < fastTime {
			t.Session.FastAnswersInARow++
		} else {
			t.Session.FastAnswersInARow = 0
		}
		t.User.TotalCorrectAnswers++
		t.User.CurrentStreak++
		if t.User.CurrentStreak > t.User.BestStreak {
			t.User.BestStreak = t.User.CurrentStreak
		}
		if t.User.AllTimeBestTime == nil || elapsed < *t.User.AllTimeBestTime {
			e := elapsed
			t.User.AllTimeBestTime = &e
		}
		t.addPoints(breakdown.Total)
		unlocked = t.unlock(checkAchievements(
			CheckContext{Type: EventAnswer, Streak: streak, Elapsed: elapsed},
			preUser, preSession,
		))
	} else {
		t.Session.SessionIncorrect++
		t.Session.SessionStreak = 0
		t.Session.FastAnswersInARow = 0
		t.Session.failCounts[questionID]++
		t.User.TotalIncorrectAnswers++
		t.User.CurrentStreak = 0
	}

	return AnswerResult{Breakdown: breakdown, Unlocked: unlocked}
}

// RecordLearnt awards the mastery bonus for a question entering the learnt
// set. totalLearnt is the size of the learnt set including this question.
func (t *Tracker) RecordLearnt(questionID string, totalLearnt int) LearntResult {
	bonus := LearntBonus()
	t.addPoints(bonus)

	fails := t.Session.failCounts[questionID]
	unlocked := t.unlock(checkAchievements(
		CheckContext{
			Type:          EventLearnt,
			TotalLearnt:   totalLearnt,
			RetryMastered: fails >= 3,
			RetryCount:    fails,
		},
		t.User, t.Session,
	))
	return LearntResult{Bonus: bonus, Unlocked: unlocked}
}

// EndQuiz awards the accuracy-scaled completion bonus and evaluates the
// completion rules. It applies whether the pool ran out or the player quit
// a started quiz.
func (t *Tracker) EndQuiz(correct, incorrect int) QuizResult {
	preUser, preSession := t.User, t.Session

	total := correct + incorrect
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total) * 100
	}
	bonus := QuizCompleteBonus(accuracy)
	t.addPoints(bonus)
	t.User.TotalQuizzesCompleted++
	t.User.LastPlayedAt = t.now()

	unlocked := t.unlock(checkAchievements(
		CheckContext{
			Type:           EventQuizComplete,
			Accuracy:       accuracy,
			TotalQuestions: total,
			IncorrectCount: incorrect,
		},
		preUser, preSession,
	))
	return QuizResult{Bonus: bonus, Accuracy: accuracy, Unlocked: unlocked}
}

func (t *Tracker) addPoints(points int) {
	if points <= 0 {
		return
	}
	t.Session.SessionPoints += points
	t.User.TotalPoints += points
}

// unlock applies newly passed rules: each grants its fixed points and is
// recorded with its unlock time.
func (t *Tracker) unlock(newly []Achievement) []Achievement {
	for _, a := range newly {
		t.addPoints(a.Points)
		t.User.UnlockedAchievements = append(t.User.UnlockedAchievements, UnlockedAchievement{
			ID:         a.ID,
			UnlockedAt: t.now(),
		})
	}
	return newly
}
