package xmlmap

import (
	"github.com/KimNorgaard/go-xmlmap/dom"
)

// Parser is the input cursor: it walks an existing document tree by moving
// a current-element position around and reading children and attributes
// into typed values.
//
// The tree is never mutated during a parse pass; only the cursor's own
// position changes. A Parser is not safe for concurrent use.
type Parser struct {
	base    *dom.Element
	current *dom.Element
}

// NewParser creates a Parser positioned on root. When expect is non-empty
// and does not match the root's tag, the error is a StructureError with
// CodeRootMismatch carrying the offending element.
func NewParser(root *dom.Element, expect string) (*Parser, error) {
	if root == nil {
		return nil, errInvalidArg("nil root element")
	}
	if expect != "" && root.Tag != expect {
		return nil, structErr(root, CodeRootMismatch, "expected root element %q, got %q", expect, root.Tag)
	}
	return &Parser{base: root, current: root}, nil
}

// Root returns the element the parser was constructed with.
func (p *Parser) Root() *dom.Element { return p.base }

// Current returns the element the cursor is positioned on.
func (p *Parser) Current() *dom.Element { return p.current }

// SetCurrent moves the cursor onto el.
func (p *Parser) SetCurrent(el *dom.Element) { p.current = el }

// Reset moves the cursor back to the root element.
func (p *Parser) Reset() { p.current = p.base }

// ReturnToParent moves the cursor to the current element's parent. On a
// parentless element it is a no-op.
func (p *Parser) ReturnToParent() {
	if parent := p.current.Parent(); parent != nil {
		p.current = parent
	}
}

// HasName reports whether the current element's tag equals name.
func (p *Parser) HasName(name string) bool {
	return p.current.Tag == name
}

// RequireName fails with CodeRootMismatch unless the current element's tag
// equals name.
func (p *Parser) RequireName(name string) error {
	if p.current.Tag != name {
		return structErr(p.current, CodeRootMismatch, "expected element %q, got %q", name, p.current.Tag)
	}
	return nil
}

// Text returns the current element's own text content.
func (p *Parser) Text() string { return p.current.Text() }

// ChildExists reports whether the current element has at least one direct
// child element named name.
func (p *Parser) ChildExists(name string) bool {
	return len(p.current.ChildElements(name)) > 0
}

// AttributeExists reports whether the named attribute is set on the
// current element.
func (p *Parser) AttributeExists(name string) bool {
	return p.current.HasAttribute(name)
}

// ChildNodes returns the direct child elements named name, in document
// order. Descendants at deeper levels are never searched.
func (p *Parser) ChildNodes(name string) []*dom.Element {
	return p.current.ChildElements(name)
}

// SingleChild returns the exactly-one direct child named name. Zero
// matches fail with CodeNotFound and more than one with CodeMultipleFound,
// both carrying the current element.
func (p *Parser) SingleChild(name string) (*dom.Element, error) {
	kids := p.current.ChildElements(name)
	switch len(kids) {
	case 1:
		return kids[0], nil
	case 0:
		return nil, structErr(p.current, CodeNotFound, "no %q element", name)
	default:
		return nil, structErr(p.current, CodeMultipleFound, "%d %q elements, want one", len(kids), name)
	}
}

// ProceedToSingleChild moves the cursor onto the exactly-one direct child
// named name.
func (p *Parser) ProceedToSingleChild(name string) error {
	el, err := p.SingleChild(name)
	if err != nil {
		return err
	}
	p.current = el
	return nil
}

// ParseOptionalString returns the text of the single child named name, or
// nil when no such child exists. Multiple matching children are still an
// error: ambiguous structure is never silently defaulted.
func (p *Parser) ParseOptionalString(name string) (*string, error) {
	el, err := p.SingleChild(name)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	s := el.Text()
	return &s, nil
}

// ParseRequiredString returns the text of the single child named name.
func (p *Parser) ParseRequiredString(name string) (string, error) {
	el, err := p.SingleChild(name)
	if err != nil {
		return "", err
	}
	return el.Text(), nil
}

// ParseOptionalBool reads an optional child through the canonical boolean
// encoding.
func (p *Parser) ParseOptionalBool(name string) (*bool, error) {
	s, err := p.ParseOptionalString(name)
	if err != nil || s == nil {
		return nil, err
	}
	v, err := ParseBool(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseRequiredBool reads a required child through the canonical boolean
// encoding.
func (p *Parser) ParseRequiredBool(name string) (bool, error) {
	s, err := p.ParseRequiredString(name)
	if err != nil {
		return false, err
	}
	return ParseBool(s)
}

// ParseOptionalDate reads an optional child as epoch seconds.
func (p *Parser) ParseOptionalDate(name string) (*int64, error) {
	s, err := p.ParseOptionalString(name)
	if err != nil || s == nil {
		return nil, err
	}
	v, err := ParseEpoch(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseRequiredDate reads a required child as epoch seconds.
func (p *Parser) ParseRequiredDate(name string) (int64, error) {
	s, err := p.ParseRequiredString(name)
	if err != nil {
		return 0, err
	}
	return ParseEpoch(s)
}

// ParseOptionalTime reads an optional child as a time-of-day epoch value.
// The read side is as flexible as ParseOptionalDate; only the canonical
// write encoding differs.
func (p *Parser) ParseOptionalTime(name string) (*int64, error) {
	return p.ParseOptionalDate(name)
}

// ParseRequiredTime reads a required child as a time-of-day epoch value.
func (p *Parser) ParseRequiredTime(name string) (int64, error) {
	return p.ParseRequiredDate(name)
}

// ParseStrings returns the text of every direct child named name, in
// document order, without deduplication.
func (p *Parser) ParseStrings(name string) []string {
	kids := p.current.ChildElements(name)
	out := make([]string, 0, len(kids))
	for _, el := range kids {
		out = append(out, el.Text())
	}
	return out
}

// ParseAttributeStrings returns the named attribute of every direct child
// named name, in document order. Children without the attribute are
// skipped.
func (p *Parser) ParseAttributeStrings(name, attr string) []string {
	var out []string
	for _, el := range p.current.ChildElements(name) {
		if v, ok := el.Attribute(attr); ok {
			out = append(out, v)
		}
	}
	return out
}

// ParseStringsByLanguage returns the text of every direct child named
// name, keyed by its language attribute (the undefined sentinel when the
// attribute is missing). A repeated language keeps the last value.
func (p *Parser) ParseStringsByLanguage(name string) map[string]string {
	out := make(map[string]string)
	for _, el := range p.current.ChildElements(name) {
		out[languageOf(el)] = el.Text()
	}
	return out
}

// ParseOptionalAttribute returns the named attribute's value on the
// current element, or nil when it is not set.
func (p *Parser) ParseOptionalAttribute(name string) *string {
	if v, ok := p.current.Attribute(name); ok {
		return &v
	}
	return nil
}

// ParseRequiredAttribute returns the named attribute's value on the
// current element; a missing attribute is CodeNotFound.
func (p *Parser) ParseRequiredAttribute(name string) (string, error) {
	v, ok := p.current.Attribute(name)
	if !ok {
		return "", structErr(p.current, CodeNotFound, "no %q attribute", name)
	}
	return v, nil
}

// ParseOptionalBoolAttribute reads an optional attribute through the
// canonical boolean encoding.
func (p *Parser) ParseOptionalBoolAttribute(name string) (*bool, error) {
	s := p.ParseOptionalAttribute(name)
	if s == nil {
		return nil, nil
	}
	v, err := ParseBool(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseRequiredBoolAttribute reads a required attribute through the
// canonical boolean encoding.
func (p *Parser) ParseRequiredBoolAttribute(name string) (bool, error) {
	s, err := p.ParseRequiredAttribute(name)
	if err != nil {
		return false, err
	}
	return ParseBool(s)
}

// Language returns the current element's language attribute, or the
// undefined sentinel when it is not set.
func (p *Parser) Language() string {
	return languageOf(p.current)
}

func languageOf(el *dom.Element) string {
	if v, ok := el.Attribute(LangAttr); ok {
		return v
	}
	return LangUndefined
}

// ChildCount returns the number of direct child elements under the
// current element.
func (p *Parser) ChildCount() int {
	return len(p.current.ChildElements(""))
}

// ChildAt returns the direct child element at position i; with advance set
// it also moves the cursor onto it.
func (p *Parser) ChildAt(i int, advance bool) (*dom.Element, error) {
	kids := p.current.ChildElements("")
	if i < 0 || i >= len(kids) {
		return nil, errInvalidArg("child index %d out of range (have %d)", i, len(kids))
	}
	el := kids[i]
	if advance {
		p.current = el
	}
	return el, nil
}
