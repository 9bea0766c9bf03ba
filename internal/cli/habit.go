package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/services"
)

func newHabitCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits",
	}

	cmd.AddCommand(newHabitAddCmd(e))
	cmd.AddCommand(newHabitListCmd(e))
	cmd.AddCommand(newHabitProgressCmd(e))
	cmd.AddCommand(newHabitDeleteCmd(e))
	cmd.AddCommand(newHabitSummaryCmd(e))
	return cmd
}

func newHabitAddCmd(e *env) *cobra.Command {
	var (
		kind      string
		frequency string
		target    int
		unit      string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a habit",
		Example: `  kanso habit add "Drink water" --kind count --target 8 --unit glasses
  kanso habit add Read --kind duration --target 30 --frequency weekly`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := domain.ParseKind(kind)
			if err != nil {
				return err
			}
			f, err := domain.ParseFrequency(frequency)
			if err != nil {
				return err
			}

			return e.withService(cmd, func(ctx context.Context, svc *services.HabitService) error {
				h, err := svc.Create(ctx, services.CreateHabitInput{
					OwnerID:   e.flags.ownerID,
					Name:      strings.Join(args, " "),
					Kind:      k,
					Frequency: f,
					Target:    target,
					Unit:      unit,
				})
				if err != nil {
					return err
				}
				return printHabit(cmd.OutOrStdout(), e.flags.output, h)
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "count", "Habit kind (count, duration)")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "daily", "Reset cadence (daily, weekly)")
	cmd.Flags().IntVarP(&target, "target", "t", 1, "Count target or minutes per period")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit label for count habits")
	return cmd
}

func newHabitListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits as of today",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withService(cmd, func(ctx context.Context, svc *services.HabitService) error {
				habits, err := svc.ListForOwner(ctx, e.flags.ownerID)
				if err != nil {
					return err
				}
				return printHabits(cmd.OutOrStdout(), e.flags.output, habits)
			})
		},
	}
}

func newHabitProgressCmd(e *env) *cobra.Command {
	var action string

	cmd := &cobra.Command{
		Use:   "progress ID [AMOUNT]",
		Short: "Record progress on a habit",
		Long: `Record progress on a habit.

Actions: add_count (default for count habits), add_minutes (default for
duration habits), set_elapsed, complete_session.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			amount := 0
			if len(args) == 2 {
				if amount, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("amount %q is not a number", args[1])
				}
				if amount > domain.MaxProgressAmount {
					return fmt.Errorf("%w: got %d", domain.ErrAmountTooLarge, amount)
				}
			}

			return e.withService(cmd, func(ctx context.Context, svc *services.HabitService) error {
				actionType, err := resolveAction(ctx, svc, action, id, e.flags.ownerID)
				if err != nil {
					return err
				}

				h, err := svc.RecordProgress(ctx, services.RecordProgressInput{
					HabitID: id,
					OwnerID: e.flags.ownerID,
					Action:  domain.ProgressAction{Type: actionType, Amount: amount},
				})
				if err != nil {
					return err
				}
				return printHabit(cmd.OutOrStdout(), e.flags.output, h)
			})
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", "", "Progress action (defaults by habit kind)")
	return cmd
}

// resolveAction picks the additive action matching the habit's kind when none
// was given.
func resolveAction(ctx context.Context, svc *services.HabitService, action string, id, ownerID int64) (domain.ActionType, error) {
	if action != "" {
		return domain.ParseActionType(action)
	}

	h, err := svc.Get(ctx, id, ownerID)
	if err != nil {
		return "", err
	}
	if h.Kind == domain.KindDuration {
		return domain.ActionAddMinutes, nil
	}
	return domain.ActionAddCount, nil
}

func newHabitDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a habit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return e.withService(cmd, func(ctx context.Context, svc *services.HabitService) error {
				if err := svc.Delete(ctx, id, e.flags.ownerID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted habit #%d\n", id)
				return nil
			})
		},
	}
}

func newHabitSummaryCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show completion and streak statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withService(cmd, func(ctx context.Context, svc *services.HabitService) error {
				s, err := svc.Summary(ctx, e.flags.ownerID)
				if err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), e.flags.output, s)
			})
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: habit id %q", domain.ErrInvalidArgument, s)
	}
	return id, nil
}
