package dom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// DefaultMaxDepth is the nesting depth limit applied by Load. It guards
// against stack exhaustion on deeply nested input.
const DefaultMaxDepth = 1000

// Load parses raw markup into a document using DefaultMaxDepth.
func Load(data []byte) (*Document, error) {
	return LoadDepth(data, DefaultMaxDepth)
}

// LoadDepth parses raw markup into a document, rejecting input nested more
// than maxDepth elements deep.
//
// Namespaces are not processed: element and attribute names are taken as
// their local parts. Comments, processing instructions, and directives are
// dropped. Character data outside the root element is ignored.
func LoadDepth(data []byte, maxDepth int) (*Document, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("dom: max depth must be a positive integer")
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := NewDocument()
	var current *Element
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dom: parsing error: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth > maxDepth {
				return nil, fmt.Errorf("dom: reached max nesting depth of %d", maxDepth)
			}
			el := NewElement(t.Name.Local)
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.SetAttribute(a.Name.Local, a.Value)
			}
			switch {
			case current != nil:
				current.AppendChild(el)
			case doc.root == nil:
				doc.SetRoot(el)
			default:
				return nil, fmt.Errorf("dom: multiple root elements (%q after %q)", el.Tag, doc.root.Tag)
			}
			current = el
		case xml.EndElement:
			depth--
			current = current.Parent()
		case xml.CharData:
			// Whitespace-only character data is layout, not content; keeping
			// it would make an indented rendering parse differently from a
			// compact one.
			if current != nil && len(bytes.TrimSpace(t)) > 0 {
				current.AppendChild(NewText(string(t)))
			}
		}
	}

	if doc.root == nil {
		return nil, fmt.Errorf("dom: document has no root element")
	}
	return doc, nil
}
