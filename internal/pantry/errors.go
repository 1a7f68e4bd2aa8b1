package pantry

import (
	"errors"
	"fmt"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/units"
)

// ErrNotFound indicates no pantry item matched the requested name, directly
// or via a substitute. Surfaced to callers as "missing ingredient", never
// fatal.
var ErrNotFound = errors.New("ingredient not found in pantry")

// UnitFamilyMismatchError indicates a requirement's canonical unit family
// differs from the stored item's base-unit family. Kept distinct from an
// insufficiency so callers can report "can't compare" instead of
// "insufficient".
type UnitFamilyMismatchError struct {
	Name       string
	ItemFamily units.Family
	WantFamily units.Family
}

func (e *UnitFamilyMismatchError) Error() string {
	return fmt.Sprintf("unit family mismatch for %q: item is tracked in %s, requirement is %s",
		e.Name, e.ItemFamily, e.WantFamily)
}

// PersistenceError indicates the durable-store call failed after the
// in-memory mutation was already applied. The mutation is unconfirmed;
// callers decide whether to retry Commit or Rollback.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
