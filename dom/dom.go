// Package dom implements the document tree that the xmlmap cursors operate
// on: a minimal XML-like tree of elements, attributes, and text nodes with
// parent links, plus loading from and rendering to raw markup.
//
// The tree owns its nodes. Callers hold plain references into it; moving a
// node between documents is not supported.
package dom

// Node is the base interface for all members of a document tree.
type Node interface {
	// Parent returns the element this node is attached to, or nil for a
	// detached node or a document root.
	Parent() *Element

	setParent(*Element)
}

// Attr is a single name="value" attribute. Attribute order on an element is
// the order in which attributes were first set.
type Attr struct {
	Name  string
	Value string
}

// Element is a named tree node with attributes and ordered children.
type Element struct {
	Tag string

	parent   *Element
	attrs    []Attr
	children []Node
}

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// NewElementText creates a detached element carrying a single text child.
func NewElementText(tag, text string) *Element {
	e := NewElement(tag)
	e.AppendChild(NewText(text))
	return e
}

// Parent returns the element's parent, or nil if it is detached or the root.
func (e *Element) Parent() *Element { return e.parent }

func (e *Element) setParent(p *Element) { e.parent = p }

// AppendChild attaches n as the last child of e.
func (e *Element) AppendChild(n Node) {
	n.setParent(e)
	e.children = append(e.children, n)
}

// Children returns the element's children in document order.
func (e *Element) Children() []Node { return e.children }

// ChildElements returns the direct child elements whose tag equals tag, in
// document order. An empty tag matches every child element. Text children
// and deeper descendants are never included.
func (e *Element) ChildElements(tag string) []*Element {
	var out []*Element
	for _, c := range e.children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if tag == "" || el.Tag == tag {
			out = append(out, el)
		}
	}
	return out
}

// SetAttribute sets name=value on e, overwriting an existing attribute of
// the same name in place. New attributes are appended.
func (e *Element) SetAttribute(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// Attribute returns the value of the named attribute and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the named attribute is set on e.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.Attribute(name)
	return ok
}

// Attrs returns the element's attributes in order.
func (e *Element) Attrs() []Attr { return e.attrs }

// Text returns the concatenated data of the element's direct text children.
// Text inside child elements is not included.
func (e *Element) Text() string {
	var out string
	for _, c := range e.children {
		if t, ok := c.(*Text); ok {
			out += t.Data
		}
	}
	return out
}

// Text is a character-data node. When CData is set the node renders as a
// CDATA section instead of entity-escaped text.
type Text struct {
	Data  string
	CData bool

	parent *Element
}

// NewText creates a detached text node.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// NewCData creates a detached text node that renders as a CDATA section.
func NewCData(data string) *Text {
	return &Text{Data: data, CData: true}
}

// Parent returns the text node's parent element, or nil if detached.
func (t *Text) Parent() *Element { return t.parent }

func (t *Text) setParent(p *Element) { t.parent = p }

// Document is the root container of a tree.
type Document struct {
	root *Element
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Root returns the document's root element, or nil for an empty document.
func (d *Document) Root() *Element { return d.root }

// SetRoot replaces the document's root element.
func (d *Document) SetRoot(e *Element) { d.root = e }
