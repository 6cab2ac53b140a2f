// Package language lists the interface translations available to openshot.
package language

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed languages.toml
var embeddedCatalog string

// Language is a supported interface language.
type Language struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
}

// Catalog is the query surface the launcher needs from the translation catalog.
type Catalog interface {
	// List returns every supported language in display order.
	List() []Language

	// IsSupported reports whether code names a supported language.
	IsSupported(code string) bool
}

// StaticCatalog is an in-memory Catalog.
type StaticCatalog struct {
	languages []Language
	codes     map[string]bool
}

// NewStaticCatalog builds a catalog from languages, keeping their order.
func NewStaticCatalog(languages []Language) *StaticCatalog {
	c := &StaticCatalog{
		languages: append([]Language(nil), languages...),
		codes:     make(map[string]bool, len(languages)),
	}
	for _, l := range languages {
		c.codes[l.Code] = true
	}
	return c
}

func (c *StaticCatalog) List() []Language {
	return append([]Language(nil), c.languages...)
}

func (c *StaticCatalog) IsSupported(code string) bool {
	return c.codes[code]
}

// Parse decodes a TOML catalog with one [[language]] table per entry.
func Parse(data string) (*StaticCatalog, error) {
	var doc struct {
		Language []Language `toml:"language"`
	}
	if _, err := toml.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse language catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Language))
	for i, l := range doc.Language {
		if l.Code == "" {
			return nil, fmt.Errorf("language %d: code is required", i)
		}
		if seen[l.Code] {
			return nil, fmt.Errorf("language %s: duplicate code", l.Code)
		}
		seen[l.Code] = true
	}

	return NewStaticCatalog(doc.Language), nil
}

// Default returns the catalog compiled into the binary.
func Default() *StaticCatalog {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		panic(err)
	}
	return c
}
