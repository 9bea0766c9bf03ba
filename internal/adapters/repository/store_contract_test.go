package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
)

func newRow(owner int64, name string) domain.HabitRow {
	return domain.HabitRow{
		OwnerID: owner, Name: name, Kind: int(domain.KindCount), Frequency: int(domain.FrequencyWeekly),
		Target: 8, Unit: "glasses", Streak: 0, LastUpdated: "2024-01-01",
		IsCompleted: 0, CurrentValue: "0",
	}
}

// runStoreContract exercises the behaviour every domain.HabitStore must share.
func runStoreContract(t *testing.T, store domain.HabitStore) {
	ctx := context.Background()

	var firstID, secondID int64

	t.Run("Insert assigns increasing ids", func(t *testing.T) {
		row := newRow(1, "Water")
		id, err := store.Insert(ctx, &row)
		require.NoError(t, err)
		assert.Positive(t, id)
		firstID = id

		other := newRow(1, "Read")
		other.Kind = int(domain.KindDuration)
		other.Unit = ""
		other.Target = 30
		secondID, err = store.Insert(ctx, &other)
		require.NoError(t, err)
		assert.Greater(t, secondID, firstID)

		foreign := newRow(2, "Run")
		_, err = store.Insert(ctx, &foreign)
		require.NoError(t, err)
	})

	t.Run("Get returns every persisted field", func(t *testing.T) {
		row, err := store.GetByID(ctx, firstID)
		require.NoError(t, err)

		want := newRow(1, "Water")
		want.ID = firstID
		assert.Equal(t, want, *row)
	})

	t.Run("List is scoped to the owner and stable", func(t *testing.T) {
		rows, err := store.ListByOwner(ctx, 1)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, firstID, rows[0].ID)
		assert.Equal(t, secondID, rows[1].ID)

		again, err := store.ListByOwner(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, rows, again)
	})

	t.Run("List of an unknown owner is empty", func(t *testing.T) {
		rows, err := store.ListByOwner(ctx, 404)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Update persists the state columns only", func(t *testing.T) {
		row, err := store.GetByID(ctx, firstID)
		require.NoError(t, err)

		row.Streak = 4
		row.LastUpdated = "2024-01-08"
		row.IsCompleted = 1
		row.CurrentValue = "9"
		row.Name = "Renamed"
		require.NoError(t, store.Update(ctx, row))

		updated, err := store.GetByID(ctx, firstID)
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Streak)
		assert.Equal(t, "2024-01-08", updated.LastUpdated)
		assert.Equal(t, 1, updated.IsCompleted)
		assert.Equal(t, "9", updated.CurrentValue)
		assert.Equal(t, "Water", updated.Name, "Name is fixed after creation")
	})

	t.Run("Update and Delete of an unknown id", func(t *testing.T) {
		ghost := newRow(1, "Ghost")
		ghost.ID = 987654

		assert.ErrorIs(t, store.Update(ctx, &ghost), domain.ErrHabitNotFound)
		assert.ErrorIs(t, store.Delete(ctx, ghost.ID), domain.ErrHabitNotFound)

		_, err := store.GetByID(ctx, ghost.ID)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Delete removes the row", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, firstID))

		_, err := store.GetByID(ctx, firstID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		rows, err := store.ListByOwner(ctx, 1)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, secondID, rows[0].ID)
	})
}
