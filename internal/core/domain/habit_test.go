package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNewHabit(t *testing.T) {
	today := time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)

	t.Run("Success: Count kind always carries a Count payload", func(t *testing.T) {
		h, err := domain.NewHabit(domain.NewHabitParams{
			OwnerID: 7, Name: "  Drink Water  ", Kind: domain.KindCount,
			Frequency: domain.FrequencyDaily, Target: 8, Unit: "glasses",
		}, today)

		require.NoError(t, err)
		assert.Equal(t, int64(0), h.ID, "ID is assigned by the store")
		assert.Equal(t, "Drink Water", h.Name)
		assert.Equal(t, 0, h.Streak)
		assert.False(t, h.IsCompleted)
		assert.Equal(t, "2024-03-05", domain.FormatDate(h.LastUpdated))

		v, ok := h.Value.(*domain.CountValue)
		require.True(t, ok, "Count habit must hold *CountValue")
		assert.Equal(t, 8, v.TargetCount)
		assert.Equal(t, 0, v.CurrentValue)
		assert.Equal(t, "glasses", v.Unit)
	})

	t.Run("Success: Duration kind always carries a Duration payload", func(t *testing.T) {
		h, err := domain.NewHabit(domain.NewHabitParams{
			OwnerID: 7, Name: "Read", Kind: domain.KindDuration,
			Frequency: domain.FrequencyWeekly, Target: 30, Unit: "ignored",
		}, today)

		require.NoError(t, err)
		v, ok := h.Value.(*domain.DurationValue)
		require.True(t, ok, "Duration habit must hold *DurationValue")
		assert.Equal(t, 30, v.TargetMinutes)
		assert.Equal(t, "", h.Unit(), "Duration habits have no unit")
		assert.Equal(t, 30, h.Target())
	})

	tests := []struct {
		name    string
		params  domain.NewHabitParams
		wantErr error
	}{
		{
			name:    "Error: Empty Name",
			params:  domain.NewHabitParams{OwnerID: 1, Name: "   ", Kind: domain.KindCount, Target: 1},
			wantErr: domain.ErrHabitNameEmpty,
		},
		{
			name:    "Error: Name Too Long",
			params:  domain.NewHabitParams{OwnerID: 1, Name: strings.Repeat("a", 101), Kind: domain.KindCount, Target: 1},
			wantErr: domain.ErrHabitNameTooLong,
		},
		{
			name:    "Error: Zero Target",
			params:  domain.NewHabitParams{OwnerID: 1, Name: "x", Kind: domain.KindDuration, Target: 0},
			wantErr: domain.ErrInvalidTarget,
		},
		{
			name:    "Error: Negative Target",
			params:  domain.NewHabitParams{OwnerID: 1, Name: "x", Kind: domain.KindCount, Target: -3},
			wantErr: domain.ErrInvalidTarget,
		},
		{
			name:    "Error: Duration Target Above One Day",
			params:  domain.NewHabitParams{OwnerID: 1, Name: "x", Kind: domain.KindDuration, Target: domain.MaxDurationTarget + 1},
			wantErr: domain.ErrInvalidTarget,
		},
		{
			name:    "Error: Count Target Above Limit",
			params:  domain.NewHabitParams{OwnerID: 1, Name: "x", Kind: domain.KindCount, Target: domain.MaxCountTarget + 1},
			wantErr: domain.ErrInvalidTarget,
		},
		{
			name:    "Error: Target Past 32 Bits",
			params:  domain.NewHabitParams{OwnerID: 1, Name: "x", Kind: domain.KindCount, Target: 1 << 31},
			wantErr: domain.ErrInvalidTarget,
		},
		{
			name:    "Error: Missing Owner",
			params:  domain.NewHabitParams{Name: "x", Kind: domain.KindCount, Target: 1},
			wantErr: domain.ErrHabitInvalidOwnerID,
		},
		{
			name:    "Error: Unknown Kind",
			params:  domain.NewHabitParams{OwnerID: 1, Name: "x", Kind: domain.Kind(9), Target: 1},
			wantErr: domain.ErrInvalidKind,
		},
		{
			name:    "Error: Unknown Frequency",
			params:  domain.NewHabitParams{OwnerID: 1, Name: "x", Kind: domain.KindCount, Frequency: domain.Frequency(4), Target: 1},
			wantErr: domain.ErrInvalidFrequency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := domain.NewHabit(tt.params, today)

			assert.Nil(t, h)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestHabit_KindPayloadCoherence(t *testing.T) {
	today := date(t, "2024-01-01")
	for _, kind := range []domain.Kind{domain.KindDuration, domain.KindCount} {
		for _, freq := range []domain.Frequency{domain.FrequencyDaily, domain.FrequencyWeekly} {
			for _, target := range []int{1, 5, 1440} {
				h, err := domain.NewHabit(domain.NewHabitParams{
					OwnerID: 1, Name: "h", Kind: kind, Frequency: freq, Target: target, Unit: "u",
				}, today)
				require.NoError(t, err)

				switch h.Value.(type) {
				case *domain.DurationValue:
					assert.Equal(t, domain.KindDuration, kind)
				case *domain.CountValue:
					assert.Equal(t, domain.KindCount, kind)
				default:
					t.Fatalf("unexpected payload %T", h.Value)
				}
				assert.Equal(t, target, h.Target())
			}
		}
	}
}

func TestHabit_CloneIsDeep(t *testing.T) {
	h, err := domain.NewHabit(domain.NewHabitParams{
		OwnerID: 1, Name: "Push-ups", Kind: domain.KindCount, Target: 20, Unit: "reps",
	}, date(t, "2024-01-01"))
	require.NoError(t, err)

	c := h.Clone()
	require.NoError(t, c.ApplyProgress(5, date(t, "2024-01-01")))

	assert.Equal(t, "0", h.Value.Serialize(), "Original payload must not change")
	assert.Equal(t, "5", c.Value.Serialize())
}

func TestHabit_Label(t *testing.T) {
	h, err := domain.NewHabit(domain.NewHabitParams{
		OwnerID: 1, Name: "Water", Kind: domain.KindCount, Target: 8, Unit: "glasses",
	}, date(t, "2024-01-01"))
	require.NoError(t, err)
	h.Streak = 2

	assert.Equal(t, "[Count] Water | 0/8 glasses | Streak: 2", h.Label())

	require.NoError(t, h.ApplyProgress(8, date(t, "2024-01-01")))
	assert.Equal(t, "[Count] Water | 8/8 glasses | Streak: 2 [DONE]", h.Label())
}

func TestParseKindAndFrequency(t *testing.T) {
	k, err := domain.ParseKind("Timer")
	assert.NoError(t, err)
	assert.Equal(t, domain.KindDuration, k)

	k, err = domain.ParseKind("count")
	assert.NoError(t, err)
	assert.Equal(t, domain.KindCount, k)

	_, err = domain.ParseKind("boolean")
	assert.ErrorIs(t, err, domain.ErrInvalidKind)

	f, err := domain.ParseFrequency("")
	assert.NoError(t, err)
	assert.Equal(t, domain.FrequencyDaily, f)

	f, err = domain.ParseFrequency("WEEKLY")
	assert.NoError(t, err)
	assert.Equal(t, domain.FrequencyWeekly, f)

	_, err = domain.ParseFrequency("monthly")
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)
}
