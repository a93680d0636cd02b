// Package substitute rewrites quoted literals that duplicate localization
// resource values into localization accessor expressions.
//
// Literal extraction is a plain `"([^"]+)"` scan, not a lexer. An escaped
// quote ends the literal early, and a literal that spans a line break still
// matches. Callers relying on precise string boundaries need a real parser.
package substitute

import (
	"regexp"
	"strings"
)

// KeyPlaceholder is replaced by the resource key in an accessor template.
const KeyPlaceholder = "{key}"

// DefaultAccessor is the Flutter gen-l10n accessor.
const DefaultAccessor = "AppLocalizations.of(context)!." + KeyPlaceholder

var literalPattern = regexp.MustCompile(`"([^"]+)"`)

// Lookup resolves a literal to a resource key.
type Lookup interface {
	Lookup(literal string) (key string, ok bool)
}

// Replacement records one distinct literal that was rewritten.
type Replacement struct {
	Literal string `yaml:"literal"`
	Key     string `yaml:"key"`
	Count   int    `yaml:"count"`
}

// Result is the outcome of rewriting one text.
type Result struct {
	Text         string
	Changed      bool
	Replacements []Replacement
}

// Total returns the number of occurrences replaced.
func (r Result) Total() int {
	n := 0
	for _, rep := range r.Replacements {
		n += rep.Count
	}
	return n
}

// Engine rewrites texts against one Lookup and accessor template.
type Engine struct {
	lookup   Lookup
	accessor string
}

// NewEngine returns an Engine. An empty accessor selects DefaultAccessor.
func NewEngine(lookup Lookup, accessor string) *Engine {
	if accessor == "" {
		accessor = DefaultAccessor
	}
	return &Engine{lookup: lookup, accessor: accessor}
}

// Accessor builds the accessor expression for key.
func (e *Engine) Accessor(key string) string {
	return strings.ReplaceAll(e.accessor, KeyPlaceholder, key)
}

// Extract returns the contents of every double-quoted substring of text, in
// order, including repeats.
func Extract(text string) []string {
	matches := literalPattern.FindAllStringSubmatch(text, -1)
	literals := make([]string, 0, len(matches))
	for _, m := range matches {
		literals = append(literals, m[1])
	}
	return literals
}

// Rewrite replaces every occurrence of each matched quoted literal in text.
//
// Literals are taken from the original text and applied in order to the
// progressively rewritten text. Replacement is per distinct literal across
// the whole text, so identical quoted text in an unrelated context is
// rewritten as well.
func (e *Engine) Rewrite(text string) Result {
	res := Result{Text: text}
	for _, literal := range Extract(text) {
		key, ok := e.lookup.Lookup(literal)
		if !ok {
			continue
		}
		quoted := `"` + literal + `"`
		n := strings.Count(res.Text, quoted)
		if n == 0 {
			continue
		}
		res.Text = strings.ReplaceAll(res.Text, quoted, e.Accessor(key))
		res.Replacements = append(res.Replacements, Replacement{Literal: literal, Key: key, Count: n})
	}
	res.Changed = res.Text != text
	return res
}
