package xmlmap

import (
	"sort"
	"strings"

	"github.com/KimNorgaard/go-xmlmap/dom"
)

// Putter is the output cursor: it builds a document tree by moving a
// current-element position around and appending children to it.
//
// A Putter is plain mutable state scoped to one build pass. It is not safe
// for concurrent use.
type Putter struct {
	doc     *dom.Document
	base    *dom.Element
	current *dom.Element
}

// NewPutter creates a Putter scoped to the document's root element.
func NewPutter(doc *dom.Document) (*Putter, error) {
	if doc == nil {
		return nil, errInvalidArg("nil document")
	}
	root := doc.Root()
	if root == nil {
		return nil, errInvalidArg("document has no root element")
	}
	return &Putter{doc: doc, base: root, current: root}, nil
}

// NewPutterAt creates a Putter scoped to an existing element of doc.
func NewPutterAt(doc *dom.Document, base *dom.Element) (*Putter, error) {
	if doc == nil {
		return nil, errInvalidArg("nil document")
	}
	if base == nil {
		return nil, errInvalidArg("nil base element")
	}
	return &Putter{doc: doc, base: base, current: base}, nil
}

// NewPutterElement creates a new element named tag and a Putter scoped to
// it. The element becomes the root of an empty document, or a child of the
// root otherwise. A nil doc means a fresh document.
func NewPutterElement(doc *dom.Document, tag string) (*Putter, error) {
	if tag == "" {
		return nil, errInvalidArg("empty base tag")
	}
	if doc == nil {
		doc = dom.NewDocument()
	}
	el := dom.NewElement(tag)
	if doc.Root() == nil {
		doc.SetRoot(el)
	} else {
		doc.Root().AppendChild(el)
	}
	return &Putter{doc: doc, base: el, current: el}, nil
}

// Document returns the document the putter is building into.
func (p *Putter) Document() *dom.Document { return p.doc }

// Base returns the element the putter was scoped to at construction.
func (p *Putter) Base() *dom.Element { return p.base }

// Current returns the element the cursor is positioned on.
func (p *Putter) Current() *dom.Element { return p.current }

// Descend moves the cursor onto el. The element must be part of the
// putter's document; that is not validated here.
func (p *Putter) Descend(el *dom.Element) { p.current = el }

// Ascend moves the cursor to the current element's parent. Ascending above
// a parentless element is an error: a producer that unbalances its
// descend/ascend pairs should fail loudly rather than write into a
// position it never meant to hold.
func (p *Putter) Ascend() error {
	parent := p.current.Parent()
	if parent == nil {
		return errInvalidArg("cannot ascend above <%s>", p.current.Tag)
	}
	p.current = parent
	return nil
}

// Reset moves the cursor back to the base element.
func (p *Putter) Reset() { p.current = p.base }

// SetAttributes sets each non-nil value as an attribute on the current
// element, overwriting attributes of the same name. Nil values are
// skipped, never cleared. Attributes new to the element are applied in
// sorted key order so rendering stays deterministic.
func (p *Putter) SetAttributes(attrs map[string]*string) {
	keys := make([]string, 0, len(attrs))
	for k, v := range attrs {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.current.SetAttribute(k, *attrs[k])
	}
}

// SetBoolAttributes is SetAttributes with boolean values passed through
// the canonical boolean encoding.
func (p *Putter) SetBoolAttributes(attrs map[string]*bool) {
	strs := make(map[string]*string, len(attrs))
	for k, v := range attrs {
		if v != nil {
			strs[k] = String(FormatBool(*v))
		}
	}
	p.SetAttributes(strs)
}

// AppendSubtree attaches an externally built node as the last child of the
// current element without moving the cursor.
func (p *Putter) AppendSubtree(n dom.Node) {
	p.attach(n)
}

// OutputText appends a text node under the current element.
func (p *Putter) OutputText(text string) {
	p.current.AppendChild(dom.NewText(text))
}

// CreateSubElement creates a child element under the current position and,
// when descend is set, moves the cursor onto it. On an empty document with
// no cursor position yet, the new element becomes the document root.
func (p *Putter) CreateSubElement(name string, descend bool, attrs ...dom.Attr) *dom.Element {
	el := dom.NewElement(name)
	for _, a := range attrs {
		el.SetAttribute(a.Name, a.Value)
	}
	p.attach(el)
	if descend {
		p.current = el
	}
	return el
}

// attach places n under the cursor, falling back to the document root (or
// creating it) when the cursor has no position yet.
func (p *Putter) attach(n dom.Node) {
	switch {
	case p.current != nil:
		p.current.AppendChild(n)
	case p.doc.Root() != nil:
		p.doc.Root().AppendChild(n)
	default:
		if el, ok := n.(*dom.Element); ok {
			p.doc.SetRoot(el)
			p.base = el
		}
	}
}

// needsCData reports whether value must be wrapped in a CDATA section.
// The substring check is deliberate: a known legacy exporter emits raw
// unescaped text, and wrapping anything containing the markup characters
// keeps such values intact without validating them.
func needsCData(value string) bool {
	return strings.ContainsAny(value, "&<>")
}

// OutputRequiredString creates a child element carrying value as text
// content, wrapped in a CDATA section when the value contains markup
// characters. The cursor does not move. The created element is returned.
func (p *Putter) OutputRequiredString(name, value string, attrs ...dom.Attr) *dom.Element {
	el := dom.NewElement(name)
	for _, a := range attrs {
		el.SetAttribute(a.Name, a.Value)
	}
	if value != "" {
		if needsCData(value) {
			el.AppendChild(dom.NewCData(value))
		} else {
			el.AppendChild(dom.NewText(value))
		}
	}
	p.attach(el)
	return el
}

// OutputOptionalString is OutputRequiredString for an optional value: a
// nil value creates nothing and returns nil.
func (p *Putter) OutputOptionalString(name string, value *string, attrs ...dom.Attr) *dom.Element {
	if value == nil {
		return nil
	}
	return p.OutputRequiredString(name, *value, attrs...)
}

// OutputRequiredBool creates a child element with the canonical boolean
// encoding of value.
func (p *Putter) OutputRequiredBool(name string, value bool, attrs ...dom.Attr) *dom.Element {
	return p.OutputRequiredString(name, FormatBool(value), attrs...)
}

// OutputOptionalBool is OutputRequiredBool for an optional value.
func (p *Putter) OutputOptionalBool(name string, value *bool, attrs ...dom.Attr) *dom.Element {
	if value == nil {
		return nil
	}
	return p.OutputRequiredBool(name, *value, attrs...)
}

// OutputRequiredDate creates a child element with the canonical date
// encoding of epoch.
func (p *Putter) OutputRequiredDate(name string, epoch int64, attrs ...dom.Attr) *dom.Element {
	return p.OutputRequiredString(name, FormatDate(epoch), attrs...)
}

// OutputOptionalDate is OutputRequiredDate for an optional value.
func (p *Putter) OutputOptionalDate(name string, epoch *int64, attrs ...dom.Attr) *dom.Element {
	if epoch == nil {
		return nil
	}
	return p.OutputRequiredDate(name, *epoch, attrs...)
}

// OutputRequiredTime creates a child element with the canonical
// time-of-day encoding of epoch.
func (p *Putter) OutputRequiredTime(name string, epoch int64, attrs ...dom.Attr) *dom.Element {
	return p.OutputRequiredString(name, FormatTime(epoch), attrs...)
}

// OutputOptionalTime is OutputRequiredTime for an optional value.
func (p *Putter) OutputOptionalTime(name string, epoch *int64, attrs ...dom.Attr) *dom.Element {
	if epoch == nil {
		return nil
	}
	return p.OutputRequiredTime(name, *epoch, attrs...)
}

// OutputStrings creates one child element per value, in order, and returns
// the created elements.
func (p *Putter) OutputStrings(name string, values []string) []*dom.Element {
	out := make([]*dom.Element, 0, len(values))
	for _, v := range values {
		out = append(out, p.OutputRequiredString(name, v))
	}
	return out
}

// OutputAttributeStrings creates one child element per value, carrying the
// value as the named attribute instead of text content.
func (p *Putter) OutputAttributeStrings(name, attr string, values []string) []*dom.Element {
	out := make([]*dom.Element, 0, len(values))
	for _, v := range values {
		out = append(out, p.CreateSubElement(name, false, dom.Attr{Name: attr, Value: v}))
	}
	return out
}

// OutputStringsByLanguage creates one child element per language-tagged
// value, in the order given. The language attribute is set on each child
// unless the language is the undefined sentinel.
func (p *Putter) OutputStringsByLanguage(name string, values []LangString) []*dom.Element {
	out := make([]*dom.Element, 0, len(values))
	for _, v := range values {
		el := p.OutputRequiredString(name, v.Value)
		if v.Lang != LangUndefined {
			el.SetAttribute(LangAttr, v.Lang)
		}
		out = append(out, el)
	}
	return out
}

// OutputLanguage sets the language attribute on the current element. The
// undefined sentinel is a no-op: absence of the attribute is its canonical
// encoding.
func (p *Putter) OutputLanguage(lang string) {
	if lang == LangUndefined {
		return
	}
	p.current.SetAttribute(LangAttr, lang)
}

// OutputOptionalObject delegates to the object's own ProduceXML and
// returns the element it produced. A nil object produces nothing. The
// cursor position is restored afterwards regardless of what the producer
// did with it, including on error.
func (p *Putter) OutputOptionalObject(obj Producer) (*dom.Element, error) {
	if obj == nil {
		return nil, nil
	}
	saved := p.current
	el, err := obj.ProduceXML(p)
	p.current = saved
	if err != nil {
		return nil, err
	}
	return el, nil
}

// OutputRequiredObject is OutputOptionalObject for an object that must
// exist and must produce a non-empty representation; either violation is
// an ErrInvalidArgument error.
func (p *Putter) OutputRequiredObject(obj Producer) (*dom.Element, error) {
	if obj == nil {
		return nil, errInvalidArg("required object is nil")
	}
	el, err := p.OutputOptionalObject(obj)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, errInvalidArg("required object produced an empty representation")
	}
	return el, nil
}

// OutputObjects produces each object in order, keeping only non-empty
// representations.
func (p *Putter) OutputObjects(objs []Producer) ([]*dom.Element, error) {
	var out []*dom.Element
	for _, obj := range objs {
		el, err := p.OutputOptionalObject(obj)
		if err != nil {
			return nil, err
		}
		if el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

// OutputObjectsByLanguage produces each language-tagged object in order
// and sets the language attribute on the produced element, not on the
// cursor position. Empty representations are skipped.
func (p *Putter) OutputObjectsByLanguage(objs []LangObject) ([]*dom.Element, error) {
	var out []*dom.Element
	for _, lo := range objs {
		el, err := p.OutputOptionalObject(lo.Object)
		if err != nil {
			return nil, err
		}
		if el == nil {
			continue
		}
		if lo.Lang != LangUndefined {
			el.SetAttribute(LangAttr, lo.Lang)
		}
		out = append(out, el)
	}
	return out, nil
}
