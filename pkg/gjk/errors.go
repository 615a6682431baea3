package gjk

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/chazu/goccd/pkg/marshal"
)

var (
	// ErrContractViolation is matched by ContractViolationError.
	ErrContractViolation = errors.New("foreign routine violated its return contract")
	// ErrPrecisionMismatch is returned by New when the routine was built
	// with a different scalar width than the bridge.
	ErrPrecisionMismatch = errors.New("scalar precision mismatch")
	// ErrNilSupport is returned when a query is missing a support function.
	ErrNilSupport = errors.New("nil support function")

	// Closure faults recorded during a query.
	ErrSupportPanic       = marshal.ErrSupportPanic
	ErrCallBudgetExceeded = marshal.ErrCallBudgetExceeded
	ErrNonFinite          = marshal.ErrNonFinite
	ErrNoCenter           = marshal.ErrNoCenter
)

// ContractViolationError reports a return code outside {0, 1}. It is never
// folded into a negative answer.
type ContractViolationError struct {
	Algorithm string
	Code      int
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("%s returned %d, want 0 or 1", e.Algorithm, e.Code)
}

func (e *ContractViolationError) Is(target error) bool {
	return target == ErrContractViolation
}

// decodeResult maps libccd's integer answer to a boolean.
func decodeResult(algorithm string, code int) (bool, error) {
	switch code {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, &ContractViolationError{Algorithm: algorithm, Code: code}
	}
}
