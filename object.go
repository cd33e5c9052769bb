package xmlmap

import "github.com/KimNorgaard/go-xmlmap/dom"

// Object traversal is generic over the handler's result type and therefore
// lives in package-level functions; methods cannot carry type parameters.
// Every function here restores the cursor position before returning,
// whether the handler succeeded or not.

// ParseOptionalObject descends into the single child named name and hands
// it to fn. When no such child exists, def is returned without error;
// absence of the child is the only condition treated that way. Errors
// raised by fn itself always propagate, including a CodeNotFound raised
// for a deeper reason.
func ParseOptionalObject[T any](p *Parser, name string, fn ParseFunc[T], def T) (T, error) {
	el, err := p.SingleChild(name)
	if err != nil {
		if isNotFound(err) {
			return def, nil
		}
		var zero T
		return zero, err
	}
	return parseAt(p, el, fn)
}

// ParseRequiredObject descends into the single child named name and hands
// it to fn. A missing child is CodeNotFound.
func ParseRequiredObject[T any](p *Parser, name string, fn ParseFunc[T]) (T, error) {
	el, err := p.SingleChild(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return parseAt(p, el, fn)
}

// ParseObjects hands every direct child named name to fn and collects the
// results in document order. The first handler failure aborts the pass.
func ParseObjects[T any](p *Parser, name string, fn ParseFunc[T]) ([]T, error) {
	var out []T
	for _, el := range p.current.ChildElements(name) {
		v, err := parseAt(p, el, fn)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseObjectsByAttribute is ParseObjects keyed by the named attribute's
// value on each child; a repeated value keeps the last result. A matched
// child without the attribute is CodeNotFound: silently inventing a key
// would corrupt the mapping.
func ParseObjectsByAttribute[T any](p *Parser, name, attr string, fn ParseFunc[T]) (map[string]T, error) {
	out := make(map[string]T)
	for _, el := range p.current.ChildElements(name) {
		key, ok := el.Attribute(attr)
		if !ok {
			return nil, structErr(el, CodeNotFound, "no %q attribute", attr)
		}
		v, err := parseAt(p, el, fn)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

// ParseObjectsByLanguage is ParseObjects keyed by each child's language
// attribute, with the undefined sentinel for children carrying none.
func ParseObjectsByLanguage[T any](p *Parser, name string, fn ParseFunc[T]) (map[string]T, error) {
	out := make(map[string]T)
	for _, el := range p.current.ChildElements(name) {
		v, err := parseAt(p, el, fn)
		if err != nil {
			return nil, err
		}
		out[languageOf(el)] = v
	}
	return out, nil
}

// parseAt runs fn with the cursor moved onto el, restoring the previous
// position afterwards even when fn fails.
func parseAt[T any](p *Parser, el *dom.Element, fn ParseFunc[T]) (T, error) {
	saved := p.current
	p.current = el
	v, err := fn(p)
	p.current = saved
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
