package domain

// Summary is the dashboard overview of one owner's habits for the current
// periods.
type Summary struct {
	OwnerID        int64   `json:"owner_id" yaml:"owner_id"`
	TotalHabits    int     `json:"total_habits" yaml:"total_habits"`
	DailyHabits    int     `json:"daily_habits" yaml:"daily_habits"`
	WeeklyHabits   int     `json:"weekly_habits" yaml:"weekly_habits"`
	CompletedNow   int     `json:"completed_now" yaml:"completed_now"`
	CompletionRate float64 `json:"completion_rate" yaml:"completion_rate"`
	BestStreak     int     `json:"best_streak" yaml:"best_streak"`
	BestStreakName string  `json:"best_streak_habit,omitempty" yaml:"best_streak_habit,omitempty"`
}

// Summarize expects habits that already went through reset evaluation.
func Summarize(ownerID int64, habits []*Habit) Summary {
	s := Summary{OwnerID: ownerID, TotalHabits: len(habits)}

	for _, h := range habits {
		switch h.Frequency {
		case FrequencyDaily:
			s.DailyHabits++
		case FrequencyWeekly:
			s.WeeklyHabits++
		}
		if h.IsCompleted {
			s.CompletedNow++
		}
		if h.Streak > s.BestStreak {
			s.BestStreak = h.Streak
			s.BestStreakName = h.Name
		}
	}

	if s.TotalHabits > 0 {
		s.CompletionRate = float64(s.CompletedNow) / float64(s.TotalHabits)
	}
	return s
}
