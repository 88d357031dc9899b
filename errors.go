package inferskema

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/reoring/inferskema/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidInput     = "invalid_input"
	CodeNotImplemented   = "not_implemented"
	CodeCyclicStructure  = "cyclic_structure"
	CodeMaxDepthExceeded = "max_depth_exceeded"
)

var (
	// ErrInvalidInput reports a sample that is absent or carries no
	// inspectable attributes.
	ErrInvalidInput = errors.New("inferskema: invalid input")
	// ErrNotImplemented reports an input shape whose inference is reserved
	// (types, functions, collections of samples).
	ErrNotImplemented = errors.New("inferskema: not implemented")
	// ErrCyclicStructure reports a sample that contains itself.
	ErrCyclicStructure = errors.New("inferskema: cyclic structure")
	// ErrMaxDepth reports a sample nested deeper than Options.MaxDepth.
	ErrMaxDepth = errors.New("inferskema: max depth exceeded")
)

// InputKind names the shape the dispatch layer recognised.
type InputKind string

const (
	InputClass    InputKind = "Class"
	InputFunction InputKind = "Function"
	InputArray    InputKind = "Array of Sample Objects"
	InputObject   InputKind = "Sample Object"
)

// Error is returned by Infer. It unwraps to one of the Err* sentinels.
type Error struct {
	Code    string    // One of the Code* constants.
	Input   InputKind // Set for invalid_input and not_implemented.
	Path    string    // Dotted attribute path; empty at the top level.
	Message string
	// Limit is the configured MaxDepth for max_depth_exceeded.
	Limit int
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "inferskema: " + e.Message
	}
	return fmt.Sprintf("inferskema: %s at %s", e.Message, e.Path)
}

func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeInvalidInput:
		return ErrInvalidInput
	case CodeNotImplemented:
		return ErrNotImplemented
	case CodeCyclicStructure:
		return ErrCyclicStructure
	case CodeMaxDepthExceeded:
		return ErrMaxDepth
	}
	return nil
}

// AsError extracts *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func invalidInput(kind InputKind) error {
	return &Error{
		Code:    CodeInvalidInput,
		Input:   kind,
		Message: i18n.T(CodeInvalidInput, map[string]string{"input": string(kind)}),
	}
}

func notImplemented(kind InputKind) error {
	return &Error{
		Code:    CodeNotImplemented,
		Input:   kind,
		Message: i18n.T(CodeNotImplemented, map[string]string{"input": string(kind)}),
	}
}

func cyclicStructure(path string) error {
	return &Error{
		Code:    CodeCyclicStructure,
		Path:    path,
		Message: i18n.T(CodeCyclicStructure, nil),
	}
}

func maxDepthExceeded(path string, limit int) error {
	return &Error{
		Code:    CodeMaxDepthExceeded,
		Path:    path,
		Limit:   limit,
		Message: i18n.T(CodeMaxDepthExceeded, map[string]string{"limit": strconv.Itoa(limit)}),
	}
}
