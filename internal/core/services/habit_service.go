package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
)

// Recorder receives engine events for metrics. The zero implementation
// discards them.
type Recorder interface {
	RolloverApplied(freq domain.Frequency, streakKept bool)
	ProgressRecorded(kind domain.Kind, completed bool)
	CorruptHabit()
}

type nopRecorder struct{}

func (nopRecorder) RolloverApplied(domain.Frequency, bool) {}
func (nopRecorder) ProgressRecorded(domain.Kind, bool)     {}
func (nopRecorder) CorruptHabit()                          {}

type HabitService struct {
	repo     domain.HabitStore
	now      func() time.Time
	loc      *time.Location
	recorder Recorder
	logger   *log.Logger
}

type Option func(*HabitService)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *HabitService) { s.now = now }
}

// WithLocation sets the time zone in which calendar dates are read.
func WithLocation(loc *time.Location) Option {
	return func(s *HabitService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *HabitService) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *HabitService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewHabitService(repo domain.HabitStore, opts ...Option) *HabitService {
	s := &HabitService{
		repo:     repo,
		now:      time.Now,
		loc:      time.UTC,
		recorder: nopRecorder{},
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the calendar date every reset and progress decision is made for.
func (s *HabitService) Today() time.Time {
	return domain.DateOf(s.now().In(s.loc))
}

type CreateHabitInput struct {
	OwnerID   int64
	Name      string
	Kind      domain.Kind
	Frequency domain.Frequency
	Target    int
	Unit      string
}

type RecordProgressInput struct {
	HabitID int64
	OwnerID int64
	Action  domain.ProgressAction
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(domain.NewHabitParams{
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		Kind:      input.Kind,
		Frequency: input.Frequency,
		Target:    input.Target,
		Unit:      input.Unit,
	}, s.Today())
	if err != nil {
		return nil, err
	}

	row := habit.ToRow()
	id, err := s.repo.Insert(ctx, &row)
	if err != nil {
		return nil, err
	}
	habit.ID = id

	return habit, nil
}

// ListForOwner returns the owner's habits as of today. It has a write side
// effect: every habit whose period rolled over is written back before the
// list is returned, so callers never see state that differs from the store.
// The first failing write-back aborts the call.
func (s *HabitService) ListForOwner(ctx context.Context, ownerID int64) ([]*domain.Habit, error) {
	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	habits := make([]*domain.Habit, 0, len(rows))

	for _, row := range rows {
		habit, err := s.decode(row)
		if err != nil {
			return nil, err
		}

		if err := s.resync(ctx, habit, today); err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, nil
}

// Get loads one habit with the same reset-and-resync behaviour as ListForOwner.
func (s *HabitService) Get(ctx context.Context, id, ownerID int64) (*domain.Habit, error) {
	habit, err := s.load(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.resync(ctx, habit, s.Today()); err != nil {
		return nil, err
	}
	return habit, nil
}

// RecordProgress applies one progress action and always persists the result.
// A pending rollover is applied first so progress never lands in a stale
// period.
func (s *HabitService) RecordProgress(ctx context.Context, input RecordProgressInput) (*domain.Habit, error) {
	habit, err := s.load(ctx, input.HabitID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	working := habit.Clone()
	rolled := working.CheckAndReset(today)

	if err := working.Apply(input.Action, today); err != nil {
		return nil, err
	}

	row := working.ToRow()
	if err := s.repo.Update(ctx, &row); err != nil {
		return nil, err
	}

	if rolled {
		s.recorder.RolloverApplied(working.Frequency, working.Streak > 0)
	}
	s.recorder.ProgressRecorded(working.Kind, working.IsCompleted)

	return working, nil
}

func (s *HabitService) Delete(ctx context.Context, id, ownerID int64) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if row.OwnerID != ownerID {
		return domain.ErrHabitNotFound
	}

	return s.repo.Delete(ctx, id)
}

func (s *HabitService) Summary(ctx context.Context, ownerID int64) (domain.Summary, error) {
	habits, err := s.ListForOwner(ctx, ownerID)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(ownerID, habits), nil
}

func (s *HabitService) load(ctx context.Context, id, ownerID int64) (*domain.Habit, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if row.OwnerID != ownerID {
		return nil, domain.ErrHabitNotFound
	}

	return s.decode(*row)
}

func (s *HabitService) decode(row domain.HabitRow) (*domain.Habit, error) {
	habit, err := domain.HabitFromRow(row)
	if err != nil {
		s.recorder.CorruptHabit()
		s.logger.Error("habit not loadable", "habit_id", row.ID, "owner_id", row.OwnerID, "err", err)
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) resync(ctx context.Context, habit *domain.Habit, today time.Time) error {
	if !habit.CheckAndReset(today) {
		return nil
	}

	row := habit.ToRow()
	if err := s.repo.Update(ctx, &row); err != nil {
		return fmt.Errorf("write back rollover of habit %d: %w", habit.ID, err)
	}

	s.recorder.RolloverApplied(habit.Frequency, habit.Streak > 0)
	s.logger.Debug("habit rolled over", "habit_id", habit.ID, "frequency", habit.Frequency, "streak", habit.Streak)
	return nil
}
