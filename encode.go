package xmlmap

import "io"

// Encoder writes the markup representation of domain objects to an output
// stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode builds obj's document and writes it to the stream.
func (e *Encoder) Encode(obj Producer) error {
	data, err := Marshal(obj, e.opts...)
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}
