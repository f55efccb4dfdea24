package encounter

import (
	"errors"
	"fmt"
)

// ErrContractViolation is the root of every error caused by a malformed
// snapshot from the authoritative engine. Such errors are never coerced to a
// default; callers must surface them.
var ErrContractViolation = errors.New("engine contract violation")

var (
	// ErrInvalidTurn reports a turn index outside [0, len(order)).
	ErrInvalidTurn = fmt.Errorf("%w: invalid turn index", ErrContractViolation)
	// ErrInconsistentOrder reports an order that is not a permutation of the participant ids.
	ErrInconsistentOrder = fmt.Errorf("%w: order inconsistent with participants", ErrContractViolation)
	// ErrUnknownParticipant reports a participant variant tag that is not monster, player or lair.
	ErrUnknownParticipant = fmt.Errorf("%w: unknown participant variant", ErrContractViolation)
	// ErrInvalidRound reports a round number below 1.
	ErrInvalidRound = fmt.Errorf("%w: invalid round", ErrContractViolation)
)
