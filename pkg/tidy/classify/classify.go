// Package classify maps file names to destination categories for the
// tidy organizer. Classification is driven by a compiled-in extension
// table plus a skip set of system and hidden files that are excluded
// from organizing entirely.
package classify

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Classifier resolves file names to categories and decides which names
// are skipped. The zero value is not usable; construct one with New.
type Classifier struct {
	byExt      map[string]string
	categories []string
	skip       []glob.Glob
}

// Option is a functional option for configuring a Classifier.
type Option func(*options)

type options struct {
	extraExtensions map[string]string
	extraSkip       []string
}

// WithExtensions adds or overrides extension mappings. Keys are
// extensions without the leading dot; values are category names.
// Keys are lowercased before insertion.
func WithExtensions(mapping map[string]string) Option {
	return func(o *options) {
		if o.extraExtensions == nil {
			o.extraExtensions = make(map[string]string, len(mapping))
		}
		for ext, cat := range mapping {
			o.extraExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = cat
		}
	}
}

// WithSkipPatterns adds skip patterns on top of the built-in set.
// Patterns are matched case-insensitively and may use glob syntax.
func WithSkipPatterns(patterns ...string) Option {
	return func(o *options) {
		o.extraSkip = append(o.extraSkip, patterns...)
	}
}

// New builds a Classifier from the canonical rules and any options.
// It returns an error if a skip pattern fails to compile.
func New(opts ...Option) (*Classifier, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Classifier{
		byExt:      make(map[string]string),
		categories: make([]string, 0, len(rules)),
	}

	// First category wins for extensions claimed more than once.
	for _, rule := range rules {
		c.categories = append(c.categories, rule.category)
		for _, ext := range rule.extensions {
			if _, taken := c.byExt[ext]; !taken {
				c.byExt[ext] = rule.category
			}
		}
	}

	// User-supplied mappings override the built-in table.
	for ext, cat := range o.extraExtensions {
		c.byExt[ext] = cat
		if !c.hasCategory(cat) {
			c.categories = append(c.categories, cat)
		}
	}

	patterns := make([]string, 0, len(defaultSkipPatterns)+len(o.extraSkip))
	patterns = append(patterns, defaultSkipPatterns...)
	patterns = append(patterns, o.extraSkip...)
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, fmt.Errorf("invalid skip pattern %q: %w", p, err)
		}
		c.skip = append(c.skip, g)
	}

	return c, nil
}

// MustNew is like New but panics on error. It is intended for use with
// the built-in rules only, which are known to compile.
func MustNew(opts ...Option) *Classifier {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Classifier) hasCategory(name string) bool {
	for _, cat := range c.categories {
		if cat == name {
			return true
		}
	}
	return false
}

// Categories returns the known category names in table order.
func (c *Classifier) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Classify returns the category for a file name, or Unknown.
//
// The extension is the lowercased segment after the final dot, except
// for compound suffixes such as ".tar.gz" which map to Archives as a
// whole. Names with no dot, or with nothing after the final dot,
// classify as Unknown. Callers are expected to filter skipped names
// with ShouldSkip first; Classify does not re-check them.
func (c *Classifier) Classify(name string) string {
	lower := strings.ToLower(name)

	for _, suffix := range compoundSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return compoundCategory
		}
	}

	idx := strings.LastIndex(lower, ".")
	if idx < 0 || idx == len(lower)-1 {
		return Unknown
	}

	if cat, ok := c.byExt[lower[idx+1:]]; ok {
		return cat
	}
	return Unknown
}

// Ext returns the lowercase extension Classify would use for a name,
// without the leading dot. Compound suffixes return their full form
// ("tar.gz"). Empty when the name has no extension.
func (c *Classifier) Ext(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range compoundSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimPrefix(suffix, ".")
		}
	}
	idx := strings.LastIndex(lower, ".")
	if idx < 0 || idx == len(lower)-1 {
		return ""
	}
	return lower[idx+1:]
}

// ShouldSkip reports whether a name is excluded from organizing.
//
// Hidden files (names starting with a dot) are always skipped, so a
// ".gitignore" is treated as hidden rather than as a file with
// extension "gitignore". Beyond that, names matching any skip pattern
// are excluded case-insensitively.
func (c *Classifier) ShouldSkip(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	lower := strings.ToLower(name)
	for _, g := range c.skip {
		if g.Match(lower) {
			return true
		}
	}
	return false
}
