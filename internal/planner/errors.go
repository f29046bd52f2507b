package planner

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tempo/internal/domain"
)

var (
	// ErrInvalidPhase indicates an entry point was invoked while the
	// session is in a phase that does not accept that event.
	ErrInvalidPhase = errors.New("operation not valid in current session phase")
)

func phaseError(op string, got domain.Phase) error {
	return fmt.Errorf("%w: %s while session is %q", ErrInvalidPhase, op, got)
}
