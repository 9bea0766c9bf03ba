package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/services"
)

type harness struct {
	t     *testing.T
	db    string
	today time.Time
	env   map[string]string
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		t:   t,
		db:  filepath.Join(t.TempDir(), "kanso.db"),
		env: map[string]string{"TIMEZONE": "UTC", "STORE_DRIVER": "sqlite", "JWT_SECRET": "cli-secret"},
	}
	h.setDay("2024-01-01")
	return h
}

func (h *harness) setDay(day string) {
	d, err := time.Parse("2006-01-02", day)
	require.NoError(h.t, err)
	h.today = d.Add(8 * time.Hour)
}

func (h *harness) run(args ...string) (string, error) {
	cmd := NewRootCmd(Options{
		Now:    func() time.Time { return h.today },
		Getenv: func(k string) string { return h.env[k] },
	})

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--db", h.db}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func TestHabitLifecycle(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("habit", "add", "Drink", "water", "--kind", "count", "--target", "3", "--unit", "glasses")
	assert.Equal(t, "#1 [Count] Drink water | 0/3 glasses | Streak: 0\n", out)

	out = h.mustRun("habit", "add", "Read", "-k", "timer", "-t", "30", "-f", "weekly")
	assert.Equal(t, "#2 [Duration] Read | 0/30 min | Streak: 0\n", out)

	out = h.mustRun("habit", "progress", "1", "3")
	assert.Equal(t, "#1 [Count] Drink water | 3/3 glasses | Streak: 0 [DONE]\n", out)

	out = h.mustRun("habit", "progress", "#2", "--action", "complete_session")
	assert.Contains(t, out, "30/30 min")

	h.setDay("2024-01-02")
	out = h.mustRun("habit", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "#1 [Count] Drink water | 0/3 glasses | Streak: 1", lines[0])
	assert.Equal(t, "#2 [Duration] Read | 30/30 min | Streak: 0 [DONE]", lines[1], "Same ISO week keeps the weekly habit")

	out = h.mustRun("habit", "delete", "1")
	assert.Equal(t, "Deleted habit #1\n", out)

	_, err := h.run("habit", "delete", "1")
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}

func TestHabitProgress_DefaultActionFollowsKind(t *testing.T) {
	h := newHarness(t)
	h.mustRun("habit", "add", "Meditate", "--kind", "duration", "--target", "10")

	out := h.mustRun("habit", "progress", "1", "4")

	assert.Contains(t, out, "4/10 min")
}

func TestHabitCommands_Errors(t *testing.T) {
	h := newHarness(t)
	h.mustRun("habit", "add", "Water", "--target", "2")

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"Unknown kind", []string{"habit", "add", "X", "--kind", "boolean"}, domain.ErrInvalidArgument},
		{"Zero target", []string{"habit", "add", "X", "--target", "0"}, domain.ErrInvalidArgument},
		{"Negative progress", []string{"habit", "progress", "1", "--", "-2"}, domain.ErrInvalidArgument},
		{"Amount above limit", []string{"habit", "progress", "1", "9223372036854775807"}, domain.ErrAmountTooLarge},
		{"Bad id", []string{"habit", "progress", "one", "1"}, domain.ErrInvalidArgument},
		{"Other owner", []string{"--owner", "2", "habit", "progress", "1", "1"}, domain.ErrNotFound},
		{"Wrong kind action", []string{"habit", "progress", "1", "--action", "set_elapsed", "5"}, domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.run(tt.args...)
			assert.ErrorIs(t, err, tt.is)
		})
	}

	t.Run("Unknown output format", func(t *testing.T) {
		_, err := h.run("--output", "json", "habit", "list")
		assert.ErrorContains(t, err, "unknown output format")
	})
}

func TestYAMLOutput(t *testing.T) {
	h := newHarness(t)
	h.mustRun("habit", "add", "Water", "--target", "2", "--unit", "glasses")
	h.mustRun("habit", "progress", "1", "2")

	out := h.mustRun("-o", "yaml", "habit", "list")

	var views []habitView
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Water", views[0].Name)
	assert.Equal(t, "count", views[0].Kind)
	assert.True(t, views[0].Completed)
	assert.Equal(t, "2024-01-01", views[0].LastUpdated)

	out = h.mustRun("-o", "yaml", "habit", "summary")

	var s domain.Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &s))
	assert.Equal(t, 1, s.TotalHabits)
	assert.Equal(t, 1.0, s.CompletionRate)
}

func TestSummaryText(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("habit", "summary")
	assert.Contains(t, out, "Habits:      0 (0 daily, 0 weekly)")

	out = h.mustRun("habit", "list")
	assert.Equal(t, "No habits yet.\n", out)
}

func TestTokenCommand(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("--owner", "42", "token", "--ttl", "1h")

	tokens := services.NewTokenService("cli-secret", "kanso-streak-engine", time.Hour)
	ownerID, err := tokens.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, int64(42), ownerID)

	t.Run("Requires a secret", func(t *testing.T) {
		h.env["JWT_SECRET"] = ""
		_, err := h.run("token")
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}

func TestVersion(t *testing.T) {
	out := newHarness(t).mustRun("version")
	assert.Equal(t, "kanso version 0.1.0\n", out)
}
