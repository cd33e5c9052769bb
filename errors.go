package xmlmap

import (
	"errors"
	"fmt"

	"github.com/KimNorgaard/go-xmlmap/dom"
)

// ErrInvalidArgument marks a caller-side contract violation: a nil required
// object, a bad constructor argument, or cursor movement that cannot be
// performed. Errors carrying it are recognized with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// StructureCode classifies how a document failed to match the shape a
// caller expected.
type StructureCode int

const (
	// CodeGeneric is a structural mismatch with no finer classification.
	CodeGeneric StructureCode = iota
	// CodeNotFound means a required child element or attribute is absent.
	CodeNotFound
	// CodeMultipleFound means a single child was required but several match.
	CodeMultipleFound
	// CodeRootMismatch means an element's tag is not the one expected.
	CodeRootMismatch
)

func (c StructureCode) String() string {
	switch c {
	case CodeNotFound:
		return "not found"
	case CodeMultipleFound:
		return "multiple found"
	case CodeRootMismatch:
		return "root mismatch"
	default:
		return "structure mismatch"
	}
}

// A StructureError reports that a document does not match the expected
// shape. Elem is the element in whose scope the mismatch was detected.
type StructureError struct {
	Elem    *dom.Element
	Code    StructureCode
	Message string
}

func (e *StructureError) Error() string {
	if e.Elem != nil {
		return fmt.Sprintf("xmlmap: %s in <%s>: %s", e.Code, e.Elem.Tag, e.Message)
	}
	return fmt.Sprintf("xmlmap: %s: %s", e.Code, e.Message)
}

// A ValueError reports a value that could not be converted under the
// canonical text encodings.
type ValueError struct {
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("xmlmap: cannot convert %q: %s", e.Value, e.Reason)
}

func errInvalidArg(format string, args ...any) error {
	return fmt.Errorf("xmlmap: %w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func structErr(el *dom.Element, code StructureCode, format string, args ...any) *StructureError {
	return &StructureError{Elem: el, Code: code, Message: fmt.Sprintf(format, args...)}
}

// isNotFound reports whether err is a StructureError with CodeNotFound.
func isNotFound(err error) bool {
	var se *StructureError
	return errors.As(err, &se) && se.Code == CodeNotFound
}
