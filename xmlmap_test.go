package xmlmap_test

import (
	"bytes"
	"strings"
	"testing"

	xmlmap "github.com/KimNorgaard/go-xmlmap"
	"github.com/KimNorgaard/go-xmlmap/dom"
	"github.com/stretchr/testify/require"
)

// The test domain: a small library catalog. Each type drives its own
// serialization through the cursors, the way real callers of the package
// are expected to.

type author struct {
	Name string
	Born *int64
}

func (a *author) ProduceXML(p *xmlmap.Putter) (*dom.Element, error) {
	// No matching Ascend: the object-output operations restore the
	// cursor position around every ProduceXML call.
	el := p.CreateSubElement("author", true)
	p.OutputRequiredString("name", a.Name)
	p.OutputOptionalDate("born", a.Born)
	return el, nil
}

func parseAuthor(p *xmlmap.Parser) (*author, error) {
	name, err := p.ParseRequiredString("name")
	if err != nil {
		return nil, err
	}
	born, err := p.ParseOptionalDate("born")
	if err != nil {
		return nil, err
	}
	return &author{Name: name, Born: born}, nil
}

type book struct {
	ID        string
	Titles    []xmlmap.LangString
	Available bool
	Published *int64
	Tags      []string
	Authors   []*author
	Note      *string
}

func (b *book) ProduceXML(p *xmlmap.Putter) (*dom.Element, error) {
	el := p.CreateSubElement("book", true)
	p.SetAttributes(map[string]*string{"id": xmlmap.String(b.ID)})
	p.OutputStringsByLanguage("title", b.Titles)
	p.OutputRequiredBool("available", b.Available)
	p.OutputOptionalDate("published", b.Published)
	p.OutputStrings("tag", b.Tags)
	for _, a := range b.Authors {
		if _, err := p.OutputRequiredObject(a); err != nil {
			return nil, err
		}
	}
	p.OutputOptionalString("note", b.Note)
	return el, nil
}

func parseBook(p *xmlmap.Parser) (*book, error) {
	id, err := p.ParseRequiredAttribute("id")
	if err != nil {
		return nil, err
	}
	titles := p.ParseStringsByLanguage("title")
	available, err := p.ParseRequiredBool("available")
	if err != nil {
		return nil, err
	}
	published, err := p.ParseOptionalDate("published")
	if err != nil {
		return nil, err
	}
	authors, err := xmlmap.ParseObjects(p, "author", parseAuthor)
	if err != nil {
		return nil, err
	}
	note, err := p.ParseOptionalString("note")
	if err != nil {
		return nil, err
	}

	b := &book{
		ID:        id,
		Available: available,
		Published: published,
		Tags:      p.ParseStrings("tag"),
		Authors:   authors,
		Note:      note,
	}
	for lang, v := range titles {
		b.Titles = append(b.Titles, xmlmap.LangString{Lang: lang, Value: v})
	}
	return b, nil
}

func TestRoundTrip(t *testing.T) {
	src := &book{
		ID: "b1",
		Titles: []xmlmap.LangString{
			{Lang: xmlmap.LangUndefined, Value: "v1"},
			{Lang: "en", Value: "v2"},
		},
		Available: true,
		Published: xmlmap.Epoch(0),
		Tags:      []string{"saga", "mead & horses"},
		Authors: []*author{
			{Name: "Snorri", Born: xmlmap.Epoch(-12345)},
			{Name: "Anonymous"},
		},
		Note: xmlmap.String("shelf <3>"),
	}

	data, err := xmlmap.Marshal(src)
	require.NoError(t, err)

	t.Run("Rendered form", func(t *testing.T) {
		out := string(data)
		require.True(t, strings.HasPrefix(out, `<book id="b1">`))
		// The undefined-language title carries no language attribute.
		require.Contains(t, out, `<title>v1</title>`)
		require.Contains(t, out, `<title lang="en">v2</title>`)
		require.Contains(t, out, `<published>1970-01-01T00:00:00.000Z</published>`)
		// Values containing markup characters are CDATA wrapped.
		require.Contains(t, out, `<tag><![CDATA[mead & horses]]></tag>`)
		require.Contains(t, out, `<note><![CDATA[shelf <3>]]></note>`)
	})

	got, err := xmlmap.Parse(data, "book", parseBook)
	require.NoError(t, err)

	require.Equal(t, src.ID, got.ID)
	require.Equal(t, src.Available, got.Available)
	require.Equal(t, src.Published, got.Published)
	require.Equal(t, src.Tags, got.Tags)
	require.Equal(t, src.Authors, got.Authors)
	require.Equal(t, src.Note, got.Note)
	require.ElementsMatch(t, src.Titles, got.Titles)
}

func TestParse(t *testing.T) {
	t.Run("Root tag mismatch", func(t *testing.T) {
		_, err := xmlmap.Parse([]byte(`<album id="a"/>`), "book", parseBook)
		require.Equal(t, xmlmap.CodeRootMismatch, structCode(t, err))
	})

	t.Run("Malformed input", func(t *testing.T) {
		_, err := xmlmap.Parse([]byte(`<book id="b">`), "book", parseBook)
		require.Error(t, err)
		require.Contains(t, err.Error(), "parsing error")
	})

	t.Run("Max depth option", func(t *testing.T) {
		deep := strings.Repeat("<a>", 6) + strings.Repeat("</a>", 6)
		_, err := xmlmap.Parse([]byte(deep), "a", func(p *xmlmap.Parser) (any, error) { return nil, nil }, xmlmap.MaxDepth(3))
		require.Error(t, err)
		require.Contains(t, err.Error(), "max nesting depth")

		_, err = xmlmap.Parse([]byte(deep), "a", func(p *xmlmap.Parser) (any, error) { return nil, nil }, xmlmap.MaxDepth(0))
		require.Error(t, err)
		require.Contains(t, err.Error(), "positive integer")
	})
}

func TestParseDocument(t *testing.T) {
	reg := xmlmap.Registry{
		"book": func(p *xmlmap.Parser) (any, error) { return parseBook(p) },
	}

	t.Run("Dispatch by root tag", func(t *testing.T) {
		v, err := xmlmap.ParseDocument([]byte(`<book id="b7"><available>false</available></book>`), reg)
		require.NoError(t, err)
		b, ok := v.(*book)
		require.True(t, ok)
		require.Equal(t, "b7", b.ID)
		require.False(t, b.Available)
	})

	t.Run("Unregistered root tag", func(t *testing.T) {
		_, err := xmlmap.ParseDocument([]byte(`<album/>`), reg)
		require.Equal(t, xmlmap.CodeRootMismatch, structCode(t, err))
		require.Contains(t, err.Error(), "no handler registered")
	})

	t.Run("Malformed input", func(t *testing.T) {
		_, err := xmlmap.ParseDocument([]byte(`not markup`), reg)
		require.Error(t, err)
	})
}

func TestEncoderDecoder(t *testing.T) {
	src := &book{ID: "b2", Available: true}

	var buf bytes.Buffer
	enc := xmlmap.NewEncoder(&buf)
	require.NoError(t, enc.Encode(src))

	dec := xmlmap.NewDecoder(&buf)
	v, err := dec.Decode(xmlmap.Registry{
		"book": func(p *xmlmap.Parser) (any, error) { return parseBook(p) },
	})
	require.NoError(t, err)
	require.Equal(t, src.ID, v.(*book).ID)

	_, err = xmlmap.NewDecoder(nil).Decode(nil)
	require.Error(t, err)
}

func TestMarshal(t *testing.T) {
	t.Run("Indent option", func(t *testing.T) {
		data, err := xmlmap.Marshal(&book{ID: "b3", Available: true}, xmlmap.Indent(2))
		require.NoError(t, err)
		expected := "<book id=\"b3\">\n" +
			"  <available>true</available>\n" +
			"</book>\n"
		require.Equal(t, expected, string(data))
	})

	t.Run("Nil object", func(t *testing.T) {
		_, err := xmlmap.Marshal(nil)
		require.ErrorIs(t, err, xmlmap.ErrInvalidArgument)
	})

	t.Run("Invalid option", func(t *testing.T) {
		_, err := xmlmap.Marshal(&book{ID: "x"}, xmlmap.Indent(-1))
		require.Error(t, err)
	})
}
