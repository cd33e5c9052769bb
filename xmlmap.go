package xmlmap

import (
	"bytes"

	"github.com/KimNorgaard/go-xmlmap/dom"
)

// Producer is the interface implemented by domain types that can build
// their own markup representation through a Putter.
//
// ProduceXML returns the element it created, or nil with a nil error for an
// intentionally empty representation.
type Producer interface {
	ProduceXML(p *Putter) (*dom.Element, error)
}

// ParseFunc reconstructs a value of type T from the parser's current
// element. Handlers needing extra context capture it in a closure.
type ParseFunc[T any] func(p *Parser) (T, error)

// RootFunc is the untyped handler form used for root-tag dispatch.
type RootFunc func(p *Parser) (any, error)

// Registry maps a document's root tag to the handler that parses it.
type Registry map[string]RootFunc

// The reserved language-attribute convention. LangUndefined is never
// written as an attribute: a missing language attribute and the sentinel
// are the same thing and round-trip to each other.
const (
	LangAttr      = "lang"
	LangUndefined = "und"
)

// LangString is one language-tagged string value. Slices of LangString
// keep the caller's ordering, which a Go map could not.
type LangString struct {
	Lang  string
	Value string
}

// LangObject is one language-tagged domain object.
type LangObject struct {
	Lang   string
	Object Producer
}

// String returns a pointer to s, for use as an optional value.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for use as an optional value.
func Bool(b bool) *bool { return &b }

// Epoch returns a pointer to v, for use as an optional date or time value.
func Epoch(v int64) *int64 { return &v }

func applyOptions(opts []Option) (options, error) {
	o := options{maxDepth: dom.DefaultMaxDepth}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, err
		}
	}
	return o, nil
}

// Marshal builds obj's markup representation in a fresh document and
// returns it rendered.
func Marshal(obj Producer, opts ...Option) ([]byte, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	doc := dom.NewDocument()
	pt := &Putter{doc: doc}
	root, err := pt.OutputRequiredObject(obj)
	if err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		// The producer built its element detached from the document.
		doc.SetRoot(root)
	}

	var buf bytes.Buffer
	if o.indent != nil {
		err = doc.WriteIndent(&buf, *o.indent)
	} else {
		err = doc.WriteTo(&buf)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse loads raw markup, checks that the root element is tag, and hands
// the root to fn.
func Parse[T any](data []byte, tag string, fn ParseFunc[T], opts ...Option) (T, error) {
	var zero T
	o, err := applyOptions(opts)
	if err != nil {
		return zero, err
	}
	doc, err := dom.LoadDepth(data, o.maxDepth)
	if err != nil {
		return zero, err
	}
	p, err := NewParser(doc.Root(), tag)
	if err != nil {
		return zero, err
	}
	return fn(p)
}

// ParseDocument loads raw markup, looks the root element's tag up in reg,
// and invokes the matching handler. An unknown root tag is a
// StructureError with CodeRootMismatch.
func ParseDocument(data []byte, reg Registry, opts ...Option) (any, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := dom.LoadDepth(data, o.maxDepth)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	fn, ok := reg[root.Tag]
	if !ok {
		return nil, structErr(root, CodeRootMismatch, "no handler registered for root element %q", root.Tag)
	}
	p, err := NewParser(root, "")
	if err != nil {
		return nil, err
	}
	return fn(p)
}
