package xmlmap

import (
	"fmt"
	"io"
)

// Decoder reads markup documents from an input stream and dispatches them
// to registered handlers by root tag.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Functional options can be provided to configure decoding, such as
// setting a maximum nesting depth with the MaxDepth option.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads one document from the input and parses it through the
// handler registered for its root tag.
//
// Note: this is a non-streaming implementation. It reads the entire
// reader into memory first before parsing.
func (d *Decoder) Decode(reg Registry) (any, error) {
	if d.r == nil {
		return nil, fmt.Errorf("xmlmap: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data, reg, d.opts...)
}
