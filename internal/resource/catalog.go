// Package resource loads the localization resource file (a Flutter ARB or any
// flat JSON object) into a Catalog that can be searched by display string.
package resource

import (
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apperrors "l10nify.io/l10nify/internal/pkg/errors"
	"l10nify.io/l10nify/internal/pkg/logger"
)

// Entry is one localizable key and its source-language display string.
type Entry struct {
	Key   string
	Value string
}

// Catalog is the read-only key/value mapping loaded from a resource file.
// Entries keep document order, which is also the tie-break order when two
// keys share a value.
type Catalog struct {
	entries []Entry
	byValue map[string]string
	skipped []string
}

// Load reads path and builds a Catalog from its top-level object.
//
// Keys starting with "@" (ARB metadata such as "@@locale" or "@title") and
// members whose value is not a string are skipped.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ErrResourceLoadFailedf(path, err)
	}
	return Parse(path, data)
}

// Parse builds a Catalog from raw JSON. name is only used in errors and logs.
func Parse(name string, data []byte) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, apperrors.ErrResourceInvalidf(name, "not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, apperrors.ErrResourceInvalidf(name, "top level is not an object")
	}

	c := &Catalog{}
	position := make(map[string]int)
	root.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if strings.HasPrefix(key, "@") || v.Type != gjson.String {
			c.skipped = append(c.skipped, key)
			return true
		}
		// A repeated key keeps its first position and takes the last value,
		// the same as decoding into an insertion-ordered map.
		if i, ok := position[key]; ok {
			c.entries[i].Value = v.String()
			return true
		}
		position[key] = len(c.entries)
		c.entries = append(c.entries, Entry{Key: key, Value: v.String()})
		return true
	})
	c.buildIndex()

	logger.Debug("Resource catalog loaded",
		zap.String("resource", name),
		zap.Int("entries", len(c.entries)),
		zap.Int("skipped", len(c.skipped)),
	)
	return c, nil
}

// NewCatalog builds a Catalog from entries already in iteration order.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{entries: append([]Entry(nil), entries...)}
	c.buildIndex()
	return c
}

func (c *Catalog) buildIndex() {
	c.byValue = make(map[string]string, len(c.entries))
	for _, e := range c.entries {
		if _, taken := c.byValue[e.Value]; !taken {
			c.byValue[e.Value] = e.Key
		}
	}
}

// Lookup returns the first key, in iteration order, whose value equals literal.
func (c *Catalog) Lookup(literal string) (string, bool) {
	key, ok := c.byValue[literal]
	return key, ok
}

// Entries returns the entries in iteration order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of localizable entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Skipped returns the keys that were present in the file but are not
// localizable entries.
func (c *Catalog) Skipped() []string {
	return append([]string(nil), c.skipped...)
}
