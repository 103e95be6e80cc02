package qb

import (
	"errors"
	"fmt"
)

// Kind classifies a ValidationError.
type Kind int

const (
	KindNotConfigured Kind = iota + 1
	KindSequence
	KindState
	KindTrailingLogic
	KindUnclosedBlock
	KindEmpty
	KindUnknownColumn
	KindIncompleteRow
	KindUnsupportedOperation
	KindNoTable
	KindInvalidArgument
)

var kindNames = map[Kind]string{
	KindNotConfigured:        "not configured",
	KindSequence:             "sequence",
	KindState:                "state",
	KindTrailingLogic:        "trailing logic",
	KindUnclosedBlock:        "unclosed block",
	KindEmpty:                "empty",
	KindUnknownColumn:        "unknown column",
	KindIncompleteRow:        "incomplete row",
	KindUnsupportedOperation: "unsupported operation",
	KindNoTable:              "no table",
	KindInvalidArgument:      "invalid argument",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	ErrNotConfigured        = errors.New("builder used before configuration")
	ErrSequence             = errors.New("condition call out of sequence")
	ErrState                = errors.New("invalid builder state")
	ErrTrailingLogic        = errors.New("condition ends on a logic operator")
	ErrUnclosedBlock        = errors.New("condition has unclosed blocks")
	ErrEmpty                = errors.New("nothing to render")
	ErrUnknownColumn        = errors.New("unknown column")
	ErrIncompleteRow        = errors.New("row is missing column values")
	ErrUnsupportedOperation = errors.New("operation not supported by provider")
	ErrNoTable              = errors.New("no table set")
	ErrInvalidArgument      = errors.New("invalid argument")

	// Detail sentinels, all of KindEmpty.
	ErrNoColumns     = errors.New("no columns")
	ErrNoRows        = errors.New("no rows")
	ErrNoAssignments = errors.New("no assignments")
	ErrNoOperations  = errors.New("no operations")
)

var kindSentinels = map[Kind]error{
	KindNotConfigured:        ErrNotConfigured,
	KindSequence:             ErrSequence,
	KindState:                ErrState,
	KindTrailingLogic:        ErrTrailingLogic,
	KindUnclosedBlock:        ErrUnclosedBlock,
	KindEmpty:                ErrEmpty,
	KindUnknownColumn:        ErrUnknownColumn,
	KindIncompleteRow:        ErrIncompleteRow,
	KindUnsupportedOperation: ErrUnsupportedOperation,
	KindNoTable:              ErrNoTable,
	KindInvalidArgument:      ErrInvalidArgument,
}

// ValidationError is raised at the builder call that broke a construction rule.
type ValidationError struct {
	Kind Kind
	// Op is the builder operation that failed, e.g. "Condition.And".
	Op  string
	Msg string
	// Detail narrows Kind, e.g. ErrNoRows for an empty INSERT.
	Detail error
}

func (e *ValidationError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("sqlbuilder: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("sqlbuilder: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is matches the sentinel of the error's kind and its detail sentinel.
func (e *ValidationError) Is(target error) bool {
	if target == kindSentinels[e.Kind] {
		return true
	}
	return e.Detail != nil && target == e.Detail
}

func (e *ValidationError) Unwrap() error {
	return e.Detail
}

func newError(kind Kind, op, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func emptyError(op string, detail error, format string, args ...interface{}) *ValidationError {
	e := newError(KindEmpty, op, format, args...)
	e.Detail = detail
	return e
}

func notConfigured(op string) *ValidationError {
	return newError(KindNotConfigured, op, "configure a provider before building statements")
}

// KindOf returns the kind of a ValidationError anywhere in err's chain, or 0.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return 0
}
