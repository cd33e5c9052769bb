package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// renderer writes a document tree as XML markup.
type renderer struct {
	w      io.Writer
	indent string
	err    error
}

// WriteTo writes the document to w as compact markup with no insignificant
// whitespace. An empty document writes nothing.
func (d *Document) WriteTo(w io.Writer) error {
	return d.write(w, "")
}

// WriteIndent writes the document to w, indenting nested elements by the
// given number of spaces per level. Elements with text content are kept on
// one line so character data is never altered.
func (d *Document) WriteIndent(w io.Writer, spaces int) error {
	indent := ""
	if spaces > 0 {
		indent = strings.Repeat(" ", spaces)
	}
	return d.write(w, indent)
}

func (d *Document) write(w io.Writer, indent string) error {
	if d.root == nil {
		return nil
	}
	r := &renderer{w: w, indent: indent}
	r.writeElement(d.root, 0)
	if r.err == nil && indent != "" {
		r.writeString("\n")
	}
	return r.err
}

// String returns the document rendered as compact markup.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.WriteTo(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// String returns the subtree rooted at e rendered as compact markup.
func (e *Element) String() string {
	var buf bytes.Buffer
	r := &renderer{w: &buf}
	r.writeElement(e, 0)
	if r.err != nil {
		return ""
	}
	return buf.String()
}

// String returns the text node rendered as markup.
func (t *Text) String() string {
	var buf bytes.Buffer
	r := &renderer{w: &buf}
	r.writeText(t)
	if r.err != nil {
		return ""
	}
	return buf.String()
}

func (r *renderer) writeString(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *renderer) writeElement(e *Element, depth int) {
	r.writeString("<")
	r.writeString(e.Tag)
	for _, a := range e.attrs {
		r.writeString(" ")
		r.writeString(a.Name)
		r.writeString(`="`)
		r.writeString(escapeAttr(a.Value))
		r.writeString(`"`)
	}

	if len(e.children) == 0 {
		r.writeString("/>")
		return
	}
	r.writeString(">")

	// Indentation is applied only between element children; as soon as an
	// element carries character data its content is rendered inline, so
	// indenting can never change the data an element round-trips to.
	block := r.indent != "" && !hasTextChild(e)
	for _, c := range e.children {
		if block {
			r.writeString("\n")
			r.writeString(strings.Repeat(r.indent, depth+1))
		}
		switch n := c.(type) {
		case *Element:
			r.writeElement(n, depth+1)
		case *Text:
			r.writeText(n)
		default:
			r.err = fmt.Errorf("dom: unsupported node type %T", c)
			return
		}
	}
	if block {
		r.writeString("\n")
		r.writeString(strings.Repeat(r.indent, depth))
	}

	r.writeString("</")
	r.writeString(e.Tag)
	r.writeString(">")
}

func (r *renderer) writeText(t *Text) {
	if t.CData {
		r.writeString(renderCData(t.Data))
		return
	}
	r.writeString(escapeText(t.Data))
}

func hasTextChild(e *Element) bool {
	for _, c := range e.children {
		if _, ok := c.(*Text); ok {
			return true
		}
	}
	return false
}

// escapeText replaces the characters that terminate or corrupt character
// data. The canonical entity set is deliberately small; anything else
// passes through untouched.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeAttr(s string) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// renderCData wraps data in a CDATA section. A literal "]]>" inside the
// data would terminate the section early, so it is split across two
// adjacent sections.
func renderCData(data string) string {
	return "<![CDATA[" + strings.ReplaceAll(data, "]]>", "]]]]><![CDATA[>") + "]]>"
}
