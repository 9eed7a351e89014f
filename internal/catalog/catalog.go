// Package catalog holds the static game catalog: per-game metadata and the
// category list shown by the portal. The catalog is embedded YAML parsed
// once at start-up and never mutated afterwards.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// All is the pseudo-category that matches every entry.
const All = "all"

//go:embed catalog.yaml
var catalogYAML []byte

// Entry is the static metadata for one game.
type Entry struct {
	ID          string         `yaml:"id" json:"id"`
	Title       string         `yaml:"title" json:"title"`
	Category    string         `yaml:"category" json:"category"`
	Description string         `yaml:"description" json:"description"`
	Emoji       string         `yaml:"emoji" json:"emoji"`
	Archetype   core.Archetype `yaml:"archetype" json:"archetype"`
}

// Category is a filter tab in the portal.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
}

// Catalog is an immutable, ordered list of entries and categories.
type Catalog struct {
	entries    []Entry
	byID       map[string]int
	categories []Category
}

type document struct {
	Categories []Category `yaml:"categories"`
	Games      []Entry    `yaml:"games"`
}

var defaultCatalog = mustParse(catalogYAML)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	return defaultCatalog
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: cannot parse: %w", err)
	}
	return New(doc.Categories, doc.Games)
}

// New builds a catalog from categories and entries, validating ids,
// categories and archetypes.
func New(categories []Category, entries []Entry) (*Catalog, error) {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	c := &Catalog{
		entries:    make([]Entry, 0, len(entries)),
		byID:       make(map[string]int, len(entries)),
		categories: append([]Category(nil), categories...),
	}
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog: entry %q has no id", e.Title)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate id %q", e.ID)
		}
		if !known[e.Category] {
			return nil, fmt.Errorf("catalog: %q has unknown category %q", e.ID, e.Category)
		}
		if !e.Archetype.Valid() {
			return nil, fmt.Errorf("catalog: %q has unknown archetype %q", e.ID, e.Archetype)
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Categories returns a copy of the category list.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Filter returns the entries whose category equals category.
// "all" (or an empty string) returns the full catalog unchanged.
func (c *Catalog) Filter(category string) []Entry {
	if category == All || category == "" {
		return c.Entries()
	}
	var out []Entry
	for _, e := range c.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// CategoryIndex returns the position of a category id, or -1.
func (c *Catalog) CategoryIndex(id string) int {
	for i, cat := range c.categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}
