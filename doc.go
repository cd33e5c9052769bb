/*
Package xmlmap provides a bidirectional, schema-agnostic mapping layer
between typed Go values and tree-structured markup documents. Instead of
reflection or struct tags, each domain type drives its own serialization
through a cursor: a mutable "current element" position with explicit
operations to descend into and climb out of the tree.

The two sides are symmetric. A Putter builds a document:

	type Book struct {
		Title     string
		Available bool
	}

	func (b *Book) ProduceXML(p *xmlmap.Putter) (*dom.Element, error) {
		el := p.CreateSubElement("book", true)
		p.OutputRequiredString("title", b.Title)
		p.OutputRequiredBool("available", b.Available)
		return el, nil
	}

	data, err := xmlmap.Marshal(&Book{Title: "Sagas", Available: true})

A Parser walks an existing document back into values:

	func parseBook(p *xmlmap.Parser) (*Book, error) {
		title, err := p.ParseRequiredString("title")
		if err != nil {
			return nil, err
		}
		avail, err := p.ParseRequiredBool("available")
		if err != nil {
			return nil, err
		}
		return &Book{Title: title, Available: avail}, nil
	}

	book, err := xmlmap.Parse(data, "book", parseBook)

Nested objects compose through the same pair of entry points: the output
side takes any Producer, the input side takes a ParseFunc for the nested
type. Optional values are pointers, where nil means the element or
attribute is absent. Multi-valued and language-tagged fields have
dedicated operations on both cursors.

The underlying tree lives in the dom subpackage and can be built, loaded,
and rendered independently of the cursors.
*/
package xmlmap
