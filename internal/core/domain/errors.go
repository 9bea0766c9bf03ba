package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the engine wraps exactly one of
// these so callers can branch with errors.Is without knowing the specific cause.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrSerialization    = errors.New("serialization error")
)

var (
	ErrHabitNotFound       = fmt.Errorf("%w: habit", ErrNotFound)
	ErrHabitNameEmpty      = fmt.Errorf("%w: habit name cannot be empty", ErrInvalidArgument)
	ErrHabitNameTooLong    = fmt.Errorf("%w: habit name is too long (max %d chars)", ErrInvalidArgument, MaxNameLen)
	ErrHabitInvalidOwnerID = fmt.Errorf("%w: invalid owner id", ErrInvalidArgument)
	ErrInvalidTarget       = fmt.Errorf("%w: target must be between 1 and %d minutes or %d counts", ErrInvalidArgument, MaxDurationTarget, MaxCountTarget)
	ErrInvalidKind         = fmt.Errorf("%w: invalid habit kind (must be duration or count)", ErrInvalidArgument)
	ErrInvalidFrequency    = fmt.Errorf("%w: invalid frequency (must be daily or weekly)", ErrInvalidArgument)
	ErrNegativeProgress    = fmt.Errorf("%w: progress cannot be negative", ErrInvalidArgument)
	ErrWrongKindAction     = fmt.Errorf("%w: action does not apply to this habit kind", ErrInvalidArgument)
	ErrUnknownAction       = fmt.Errorf("%w: unknown progress action", ErrInvalidArgument)
	ErrAmountTooLarge      = fmt.Errorf("%w: progress amount is too large (max %d)", ErrInvalidArgument, MaxProgressAmount)
	ErrProgressOverflow    = fmt.Errorf("%w: progress would overflow the counter", ErrInvalidArgument)
)

func corruptRow(id int64, field string, cause error) error {
	return fmt.Errorf("%w: habit %d: field %s: %v", ErrSerialization, id, field, cause)
}
