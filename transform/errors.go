package transform

import "errors"

// Sentinel errors for the kinds enumerated in spec.md §7. Client code
// checks these with errors.Is; ErrorCode gives a machine-readable string
// for CLI/JSON surfaces, mirroring ast.ErrorCode's split.
var (
	ErrNoMatchesFound  = errors.New("no matches found")
	ErrUnknownPhase    = errors.New("unknown phase")
	ErrInjectionFailed = errors.New("injection failed")
)

type ErrorCode string

const (
	ECNoMatchesFound  ErrorCode = "ERR_NO_MATCHES"
	ECUnknownPhase    ErrorCode = "ERR_UNKNOWN_PHASE"
	ECInjectionFailed ErrorCode = "ERR_INJECTION_FAILED"
)

// transformError wraps a sentinel with a message, following ast.astError's
// ErrNoMatchesFound + ErrorCode pairing.
type transformError struct {
	code     ErrorCode
	sentinel error
	msg      string
}

func (e *transformError) Error() string   { return e.msg }
func (e *transformError) Unwrap() error   { return e.sentinel }
func (e *transformError) Code() ErrorCode { return e.code }

// NewNoMatchesFoundError reports that a phase ran without finding
// anything to transform; CLI callers can distinguish this from a hard
// failure via errors.Is(err, ErrNoMatchesFound).
func NewNoMatchesFoundError(phaseName string) error {
	return &transformError{code: ECNoMatchesFound, sentinel: ErrNoMatchesFound, msg: "phase " + phaseName + ": no matches found"}
}

// NewUnknownPhaseError reports that a requested phase name has no
// registered builtin; CLI callers distinguish this from a hard failure
// via errors.Is(err, ErrUnknownPhase).
func NewUnknownPhaseError(name string) error {
	return &transformError{code: ECUnknownPhase, sentinel: ErrUnknownPhase, msg: "unknown phase: " + name}
}
