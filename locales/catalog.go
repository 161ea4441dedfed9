package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
)

//go:embed catalogs/*.json
var catalogFS embed.FS

// Catalog holds one message table per language and negotiates between them.
type Catalog struct {
	fallback string
	tags     []string
	messages map[string]map[string]string
	matcher  language.Matcher
}

// Load reads the embedded catalogs. fallback must be one of them.
func Load(fallback string) (*Catalog, error) {
	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		return nil, err
	}

	c := &Catalog{fallback: fallback, messages: make(map[string]map[string]string)}
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		raw, err := catalogFS.ReadFile(path.Join("catalogs", entry.Name()))
		if err != nil {
			return nil, err
		}
		table := make(map[string]string)
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", lang, err)
		}
		c.messages[lang] = table
	}
	if _, ok := c.messages[fallback]; !ok {
		return nil, fmt.Errorf("no catalog for fallback language %q", fallback)
	}

	// The matcher prefers its first tag, so the fallback goes first.
	c.tags = append(c.tags, fallback)
	for lang := range c.messages {
		if lang != fallback {
			c.tags = append(c.tags, lang)
		}
	}
	supported := make([]language.Tag, 0, len(c.tags))
	for _, lang := range c.tags {
		supported = append(supported, language.Make(lang))
	}
	c.matcher = language.NewMatcher(supported)
	return c, nil
}

// Negotiate picks the best catalog for an Accept-Language header value.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return c.fallback
	}
	return c.tags[index]
}

// Translate resolves key in lang, then in the fallback, then returns the key.
// {{name}} style placeholders are replaced from args, given as name, value pairs.
func (c *Catalog) Translate(lang, key string, args ...string) string {
	msg, ok := c.messages[lang][key]
	if !ok {
		msg, ok = c.messages[c.fallback][key]
	}
	if !ok {
		return key
	}
	for i := 0; i+1 < len(args); i += 2 {
		msg = strings.ReplaceAll(msg, "{{"+args[i]+"}}", args[i+1])
	}
	return msg
}

// Messages returns the raw table for lang.
func (c *Catalog) Messages(lang string) (map[string]string, bool) {
	table, ok := c.messages[lang]
	return table, ok
}
