package ast

import "errors"

// Sentinel errors for the kinds enumerated in spec.md §7. Client code
// checks these with errors.Is; ErrorCode gives a machine-readable string
// for CLI/JSON surfaces, mirroring the teacher's ErrorCode split.
var (
	ErrDetachmentViolation = errors.New("detachment violation")
	ErrUniquenessViolation = errors.New("uniqueness violation")
	ErrIndexInvariantBroken = errors.New("index invariant broken")
)

type ErrorCode string

const (
	ECDetachmentViolation ErrorCode = "ERR_DETACHMENT"
	ECUniquenessViolation ErrorCode = "ERR_UNIQUENESS"
	ECIndexInvariantBroken ErrorCode = "ERR_INDEX_INVARIANT"
)

// astError wraps a sentinel with a message, following internal/model's
// ErrNoMatchesFound + ErrorCode pairing in the teacher.
type astError struct {
	code ErrorCode
	sentinel error
	msg  string
}

func (e *astError) Error() string { return e.msg }
func (e *astError) Unwrap() error { return e.sentinel }
func (e *astError) Code() ErrorCode { return e.code }

func newDetachmentErr(msg string) error {
	return &astError{code: ECDetachmentViolation, sentinel: ErrDetachmentViolation, msg: msg}
}

func newUniquenessErr(msg string) error {
	return &astError{code: ECUniquenessViolation, sentinel: ErrUniquenessViolation, msg: msg}
}

func newIndexInvariantErr(msg string) error {
	return &astError{code: ECIndexInvariantBroken, sentinel: ErrIndexInvariantBroken, msg: msg}
}
