package xmlmap

import "fmt"

type options struct {
	maxDepth int
	indent   *int
}

// Option configures parsing and rendering at the document level.
type Option func(*options) error

// MaxDepth returns an Option that sets the maximum nesting depth accepted
// when loading a document. This helps prevent stack overflows on
// pathologically nested input.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("xmlmap: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// Indent returns an Option that renders output with n spaces of indentation
// per nesting level. Without it, output is compact.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("xmlmap: indent must not be negative")
		}
		o.indent = &n
		return nil
	}
}
