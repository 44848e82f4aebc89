// Package book reads and writes the JSON that mdBook exchanges with a
// preprocessor: a `[context, book]` pair on stdin and the book on stdout.
//
// Only chapter contents are interpreted. Every other value, including
// fields this package does not know about, is carried through as raw JSON
// so that a round trip leaves the book unchanged apart from the edits
// made through Chapter.Content.
package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Context is the preprocessor context sent by mdBook.
type Context struct {
	Root          string          `json:"root"`
	Config        json.RawMessage `json:"config"`
	Renderer      string          `json:"renderer"`
	MDBookVersion string          `json:"mdbook_version"`
}

// Book is the book tree. Its top-level items live under "sections"
// (mdBook 0.4) or "items" (mdBook 0.5).
type Book struct {
	fields map[string]json.RawMessage
	key    string
	Items  []*Item
}

// Item is one entry of the book: a chapter, a separator or a part title.
// Non-chapter items are kept as raw JSON.
type Item struct {
	raw     json.RawMessage
	Chapter *Chapter
}

// Chapter is a chapter item. Path is relative to the book's source
// directory; Draft chapters have no path.
type Chapter struct {
	fields   map[string]json.RawMessage
	Name     string
	Content  string
	Path     string
	Draft    bool
	SubItems []*Item
}

var itemKeys = []string{"sections", "items"}

// ParseInput decodes the `[context, book]` pair read from r.
func ParseInput(r io.Reader) (*Context, *Book, error) {
	var pair []json.RawMessage
	if err := json.NewDecoder(r).Decode(&pair); err != nil {
		return nil, nil, fmt.Errorf("decode preprocessor input: %w", err)
	}
	if len(pair) != 2 {
		return nil, nil, fmt.Errorf("decode preprocessor input: want [context, book], got %d elements", len(pair))
	}

	var ctx Context
	if err := json.Unmarshal(pair[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("decode context: %w", err)
	}
	b := &Book{}
	if err := json.Unmarshal(pair[1], b); err != nil {
		return nil, nil, fmt.Errorf("decode book: %w", err)
	}
	return &ctx, b, nil
}

func (b *Book) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &b.fields); err != nil {
		return err
	}
	for _, k := range itemKeys {
		raw, ok := b.fields[k]
		if !ok {
			continue
		}
		b.key = k
		return json.Unmarshal(raw, &b.Items)
	}
	return errors.New("book has neither sections nor items")
}

func (b *Book) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(b.fields)+1)
	for k, v := range b.fields {
		fields[k] = v
	}
	key := b.key
	if key == "" {
		key = itemKeys[0]
	}
	items, err := marshal(nonNil(b.Items))
	if err != nil {
		return nil, err
	}
	fields[key] = items
	return marshal(fields)
}

func (it *Item) UnmarshalJSON(data []byte) error {
	it.raw = append(json.RawMessage(nil), data...)
	var variant map[string]json.RawMessage
	if err := json.Unmarshal(data, &variant); err != nil {
		// "Separator" and other unit variants are plain strings.
		return nil
	}
	raw, ok := variant["Chapter"]
	if !ok {
		return nil
	}
	it.Chapter = &Chapter{}
	return json.Unmarshal(raw, it.Chapter)
}

func (it *Item) MarshalJSON() ([]byte, error) {
	if it.Chapter == nil {
		return it.raw, nil
	}
	return marshal(map[string]*Chapter{"Chapter": it.Chapter})
}

func (c *Chapter) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &c.fields); err != nil {
		return err
	}
	var path *string
	for name, dst := range map[string]any{
		"name":      &c.Name,
		"content":   &c.Content,
		"path":      &path,
		"sub_items": &c.SubItems,
	} {
		raw, ok := c.fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("chapter field %s: %w", name, err)
		}
	}
	if path == nil {
		c.Draft = true
	} else {
		c.Path = *path
	}
	return nil
}

func (c *Chapter) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(c.fields)+2)
	for k, v := range c.fields {
		fields[k] = v
	}
	content, err := marshal(c.Content)
	if err != nil {
		return nil, err
	}
	fields["content"] = content
	subs, err := marshal(nonNil(c.SubItems))
	if err != nil {
		return nil, err
	}
	fields["sub_items"] = subs
	return marshal(fields)
}

// ForEachChapter calls fn for every chapter, parents before their
// sub-chapters. The first error stops the walk.
func (b *Book) ForEachChapter(fn func(*Chapter) error) error {
	return walk(b.Items, fn)
}

func walk(items []*Item, fn func(*Chapter) error) error {
	for _, it := range items {
		if it.Chapter == nil {
			continue
		}
		if err := fn(it.Chapter); err != nil {
			return err
		}
		if err := walk(it.Chapter.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo writes the book as JSON.
func (b *Book) WriteTo(w io.Writer) (int64, error) {
	data, err := marshal(b)
	if err != nil {
		return 0, fmt.Errorf("encode book: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

// marshal is json.Marshal without HTML escaping; chapter contents are
// markdown and HTML and should reach the renderer as written.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func nonNil(items []*Item) []*Item {
	if items == nil {
		return []*Item{}
	}
	return items
}
