package gamification

import "time"

// EventType is the kind of occurrence that can unlock achievements.
type EventType string

const (
	EventAnswer       EventType = "answer"
	EventLearnt       EventType = "learnt"
	EventQuizComplete EventType = "quiz_complete"
	EventSessionStart EventType = "session_start"
)

// Achievement is one fixed entry of the rule table.
type Achievement struct {
	ID             string
	Name           string
	Description    string
	Category       string
	Tier           string
	Points         int
	PrerequisiteID string // must be unlocked first, empty when none
	Hidden         bool   // not shown until unlocked
}

// CheckContext carries the event payload achievement conditions inspect.
// Zero values mean "not applicable to this event".
type CheckContext struct {
	Type           EventType
	Streak         int
	Elapsed        time.Duration
	TotalLearnt    int
	Accuracy       float64
	TotalQuestions int
	IncorrectCount int
	RetryMastered  bool
	RetryCount     int
	Hour           int // local hour of day, for the hidden time-based rules
}

// Achievements is the full ordered rule table.
var Achievements = []Achievement{
	// Milestones
	{ID: "first_correct", Name: "First Steps", Description: "Answer your first question correctly", Category: "milestone", Points: 10},
	{ID: "first_learnt", Name: "Knowledge Keeper", Description: "Master your first question", Category: "milestone", Points: 25},
	{ID: "first_quiz", Name: "Finisher", Description: "Complete your first quiz", Category: "milestone", Points: 50},

	// Streaks
	{ID: "streak_3", Name: "Getting Warmed Up", Description: "Answer 3 questions correctly in a row", Category: "streak", Tier: "bronze", Points: 15},
	{ID: "streak_5", Name: "On Fire", Description: "Answer 5 questions correctly in a row", Category: "streak", Tier: "silver", PrerequisiteID: "streak_3", Points: 30},
	{ID: "streak_10", Name: "Unstoppable", Description: "Answer 10 questions correctly in a row", Category: "streak", Tier: "gold", PrerequisiteID: "streak_5", Points: 75},
	{ID: "streak_20", Name: "Legendary Mind", Description: "Answer 20 questions correctly in a row", Category: "streak", Tier: "platinum", PrerequisiteID: "streak_10", Points: 200},

	// Speed
	{ID: "speed_5s", Name: "Quick Thinker", Description: "Answer correctly in under 5 seconds", Category: "speed", Points: 20},
	{ID: "speed_3s", Name: "Speed Demon", Description: "Answer correctly in under 3 seconds", Category: "speed", PrerequisiteID: "speed_5s", Points: 50},
	{ID: "speed_streak", Name: "Rapid Fire", Description: "Answer 5 questions in a row, each under 5 seconds", Category: "speed", Points: 100},

	// Mastery
	{ID: "master_5", Name: "Budding Scholar", Description: "Master 5 questions", Category: "mastery", Tier: "bronze", Points: 25},
	{ID: "master_10", Name: "Dedicated Learner", Description: "Master 10 questions", Category: "mastery", Tier: "silver", PrerequisiteID: "master_5", Points: 50},
	{ID: "master_25", Name: "Knowledge Master", Description: "Master 25 questions", Category: "mastery", Tier: "gold", PrerequisiteID: "master_10", Points: 150},
	{ID: "master_50", Name: "Sage", Description: "Master 50 questions", Category: "mastery", Tier: "platinum", PrerequisiteID: "master_25", Points: 300},

	// Accuracy
	{ID: "perfect_5", Name: "Perfect Run", Description: "Complete a quiz with 100% accuracy (5+ questions)", Category: "accuracy", Points: 75},
	{ID: "perfect_10", Name: "Flawless Victory", Description: "Complete a quiz with 100% accuracy (10+ questions)", Category: "accuracy", PrerequisiteID: "perfect_5", Points: 150},

	// Persistence
	{ID: "comeback", Name: "Comeback Kid", Description: "Master a question after failing it 3+ times", Category: "persistence", Points: 40},
	{ID: "never_give_up", Name: "Never Give Up", Description: "Complete a quiz after 10+ incorrect answers", Category: "persistence", Points: 60},

	// Hidden, time of day
	{ID: "night_owl", Name: "Night Owl", Description: "Study between midnight and 4 AM", Category: "hidden", Hidden: true, Points: 35},
	{ID: "early_bird", Name: "Early Bird", Description: "Study between 5 AM and 7 AM", Category: "hidden", Hidden: true, Points: 35},
}

// AchievementByID looks up a rule table entry.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// VisibleAchievements returns the rules a player may see: everything except
// hidden ones they have not unlocked yet.
func VisibleAchievements(unlocked map[string]bool) []Achievement {
	out := make([]Achievement, 0, len(Achievements))
	for _, a := range Achievements {
		if !a.Hidden || unlocked[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

// canUnlock reports whether a rule is still locked and its prerequisite, if
// any, is satisfied.
func canUnlock(a Achievement, unlocked map[string]bool) bool {
	if unlocked[a.ID] {
		return false
	}
	if a.PrerequisiteID != "" && !unlocked[a.PrerequisiteID] {
		return false
	}
	return true
}

// checkAchievements tests every locked, prerequisite-satisfied rule against
// the event. Conditions see the stats as they were before the event was
// applied, so "first" rules trigger on the occurrence itself.
func checkAchievements(ctx CheckContext, user UserStats, session SessionStats) []Achievement {
	unlocked := user.unlockedSet()
	var newly []Achievement
	for _, a := range Achievements {
		if !canUnlock(a, unlocked) {
			continue
		}
		if conditionMet(a, ctx, user, session) {
			newly = append(newly, a)
		}
	}
	return newly
}

func conditionMet(a Achievement, ctx CheckContext, user UserStats, session SessionStats) bool {
	switch a.ID {
	case "first_correct":
		return ctx.Type == EventAnswer && user.TotalCorrectAnswers == 0
	case "first_learnt":
		return ctx.Type == EventLearnt && ctx.TotalLearnt == 1
	case "first_quiz":
		return ctx.Type == EventQuizComplete && user.TotalQuizzesCompleted == 0

	case "streak_3":
		return ctx.Type == EventAnswer && ctx.Streak >= 3
	case "streak_5":
		return ctx.Type == EventAnswer && ctx.Streak >= 5
	case "streak_10":
		return ctx.Type == EventAnswer && ctx.Streak >= 10
	case "streak_20":
		return ctx.Type == EventAnswer && ctx.Streak >= 20

	case "speed_5s":
		return ctx.Type == EventAnswer && ctx.Elapsed < 5*time.Second
	case "speed_3s":
		return ctx.Type == EventAnswer && ctx.Elapsed < 3*time.Second
	case "speed_streak":
		return ctx.Type == EventAnswer && session.FastAnswersInARow >= 5

	case "master_5":
		return ctx.Type == EventLearnt && ctx.TotalLearnt >= 5
	case "master_10":
		return ctx.Type == EventLearnt && ctx.TotalLearnt >= 10
	case "master_25":
		return ctx.Type == EventLearnt && ctx.TotalLearnt >= 25
	case "master_50":
		return ctx.Type == EventLearnt && ctx.TotalLearnt >= 50

	case "perfect_5":
		return ctx.Type == EventQuizComplete && ctx.Accuracy == 100 && ctx.TotalQuestions >= 5
	case "perfect_10":
		return ctx.Type == EventQuizComplete && ctx.Accuracy == 100 && ctx.TotalQuestions >= 10

	case "comeback":
		return ctx.Type == EventLearnt && ctx.RetryMastered && ctx.RetryCount >= 3
	case "never_give_up":
		return ctx.Type == EventQuizComplete && ctx.IncorrectCount >= 10

	case "night_owl":
		return ctx.Type == EventSessionStart && ctx.Hour >= 0 && ctx.Hour < 4
	case "early_bird":
		return ctx.Type == EventSessionStart && ctx.Hour >= 5 && ctx.Hour < 7
	}
	return false
}
