// Package quote serves one motivational quote per calendar day from an
// embedded catalog.
package quote

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed quotes.yaml
var defaultCatalog []byte

// Quote is one catalog entry.
type Quote struct {
	Text   string `yaml:"text" json:"text"`
	Author string `yaml:"author" json:"author"`
}

// Book is an ordered quote catalog.
type Book struct {
	quotes []Quote
}

type catalogFile struct {
	Quotes []Quote `yaml:"quotes"`
}

// Load parses a YAML catalog of the form `quotes: [{text, author}]`.
func Load(data []byte) (*Book, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing quote catalog: %w", err)
	}
	if len(f.Quotes) == 0 {
		return nil, errors.New("quote catalog is empty")
	}
	for i, q := range f.Quotes {
		if q.Text == "" {
			return nil, fmt.Errorf("quote %d: text is required", i)
		}
	}
	return &Book{quotes: f.Quotes}, nil
}

// Default returns the embedded catalog.
func Default() *Book {
	b, err := Load(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of quotes.
func (b *Book) Len() int {
	return len(b.quotes)
}

// For returns the quote for d's calendar date. The same date always gets
// the same quote; consecutive dates cycle through the catalog.
func (b *Book) For(d time.Time) Quote {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400
	n := int64(len(b.quotes))
	return b.quotes[((day%n)+n)%n]
}
