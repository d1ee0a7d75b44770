// Package catalog holds the static category table: id to label mapping, the
// fallback label for unknown ids and the ordered color palette.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const DefaultFallbackLabel = "Other"

var ErrEmptyPalette = errors.New("catalog palette must not be empty")

// DefaultPalette is the ordered chart palette. Slots cycle when buckets
// outnumber colors.
var DefaultPalette = []string{"#3B82F6", "#22C55E", "#EAB308", "#EF4444", "#A855F7"}

// Entry is one known category.
type Entry struct {
	ID    string `mapstructure:"id" json:"id"`
	Label string `mapstructure:"label" json:"label"`
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	entries  []Entry
	labels   map[string]string
	fallback string
	palette  []string
}

// fileConfig is the on-disk shape read by viper.
type fileConfig struct {
	FallbackLabel string   `mapstructure:"fallback_label"`
	Palette       []string `mapstructure:"palette"`
	Categories    []Entry  `mapstructure:"categories"`
}

// New builds a catalog. An empty fallback uses DefaultFallbackLabel; a nil
// palette uses DefaultPalette.
func New(entries []Entry, fallback string, palette []string) (*Catalog, error) {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallbackLabel
	}
	if palette == nil {
		palette = DefaultPalette
	}
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}

	c := &Catalog{
		labels:   make(map[string]string, len(entries)),
		fallback: fallback,
		palette:  append([]string(nil), palette...),
	}
	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("category with label %q has no id", e.Label)
		}
		if _, dup := c.labels[id]; dup {
			return nil, fmt.Errorf("duplicate category id %q", id)
		}
		c.labels[id] = e.Label
		c.entries = append(c.entries, Entry{ID: id, Label: e.Label})
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New([]Entry{
		{ID: "1", Label: "Makanan & Minuman"},
		{ID: "2", Label: "Transportasi"},
		{ID: "3", Label: "Hiburan"},
		{ID: "4", Label: "Lainnya"},
	}, DefaultFallbackLabel, DefaultPalette)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog file (TOML, YAML or JSON, by extension). Keys missing
// from the file keep their built-in defaults.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)

	def := Default()
	v.SetDefault("fallback_label", def.fallback)
	v.SetDefault("palette", def.palette)
	defaults := make([]map[string]any, 0, len(def.entries))
	for _, e := range def.entries {
		defaults = append(defaults, map[string]any{"id": e.ID, "label": e.Label})
	}
	v.SetDefault("categories", defaults)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return New(fc.Categories, fc.FallbackLabel, fc.Palette)
}

// Label resolves id, returning the fallback label for unknown ids.
func (c *Catalog) Label(id string) string {
	if l, ok := c.labels[id]; ok {
		return l
	}
	return c.fallback
}

// Known reports whether id is in the table.
func (c *Catalog) Known(id string) bool {
	_, ok := c.labels[id]
	return ok
}

// Color returns the palette slot and color for the bucket at position.
func (c *Catalog) Color(position int) (int, string) {
	slot := position % len(c.palette)
	if slot < 0 {
		slot += len(c.palette)
	}
	return slot, c.palette[slot]
}

// Entries returns a copy of the known categories in declaration order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Palette returns a copy of the palette.
func (c *Catalog) Palette() []string {
	return append([]string(nil), c.palette...)
}

func (c *Catalog) FallbackLabel() string { return c.fallback }
