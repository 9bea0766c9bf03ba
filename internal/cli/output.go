package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

type habitView struct {
	ID          int64   `yaml:"id"`
	Name        string  `yaml:"name"`
	Kind        string  `yaml:"kind"`
	Frequency   string  `yaml:"frequency"`
	Progress    string  `yaml:"progress"`
	Fraction    float64 `yaml:"fraction"`
	Streak      int     `yaml:"streak"`
	Completed   bool    `yaml:"completed"`
	LastUpdated string  `yaml:"last_updated"`
}

func viewOf(h *domain.Habit) habitView {
	return habitView{
		ID:          h.ID,
		Name:        h.Name,
		Kind:        h.Kind.String(),
		Frequency:   h.Frequency.String(),
		Progress:    h.Value.ProgressLabel(),
		Fraction:    h.Value.ProgressFraction(),
		Streak:      h.Streak,
		Completed:   h.IsCompleted,
		LastUpdated: domain.FormatDate(h.LastUpdated),
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func printHabit(w io.Writer, format string, h *domain.Habit) error {
	if format == outputYAML {
		return writeYAML(w, viewOf(h))
	}
	_, err := fmt.Fprintf(w, "#%d %s\n", h.ID, h.Label())
	return err
}

func printHabits(w io.Writer, format string, habits []*domain.Habit) error {
	if format == outputYAML {
		views := make([]habitView, 0, len(habits))
		for _, h := range habits {
			views = append(views, viewOf(h))
		}
		return writeYAML(w, views)
	}

	if len(habits) == 0 {
		_, err := fmt.Fprintln(w, "No habits yet.")
		return err
	}
	for _, h := range habits {
		if err := printHabit(w, format, h); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, format string, s domain.Summary) error {
	if format == outputYAML {
		return writeYAML(w, s)
	}

	fmt.Fprintf(w, "Habits:      %d (%d daily, %d weekly)\n", s.TotalHabits, s.DailyHabits, s.WeeklyHabits)
	fmt.Fprintf(w, "Completed:   %d (%.0f%%)\n", s.CompletedNow, s.CompletionRate*100)
	if s.BestStreakName != "" {
		fmt.Fprintf(w, "Best streak: %d (%s)\n", s.BestStreak, s.BestStreakName)
	} else {
		fmt.Fprintf(w, "Best streak: %d\n", s.BestStreak)
	}
	return nil
}
