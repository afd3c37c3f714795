// Package langdb reads the language catalog: a YAML document mapping
// processor language IDs to compiled spec files and the context
// defaults a session should apply for them.
package langdb

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Language is one catalog entry.
type Language struct {
	// ID is the canonical language identifier, for example
	// "x86:LE:64:default".
	ID string `yaml:"id"`
	// Description is free-form display text.
	Description string `yaml:"description"`
	// SpecFile names the compiled spec document, either absolute or
	// relative to a search directory.
	SpecFile string `yaml:"specfile"`
	// Context holds context-variable defaults for this language.
	Context map[string]uint32 `yaml:"context"`
}

// Catalog is a parsed language catalog.
type Catalog struct {
	Languages []Language `yaml:"languages"`
}

// Parse reads a catalog from YAML bytes. Every entry must carry an id
// and a specfile, and ids must be unique.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("langdb: parse: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Languages))
	for i, l := range c.Languages {
		if l.ID == "" {
			return nil, fmt.Errorf("langdb: entry %d: missing id", i)
		}
		if l.SpecFile == "" {
			return nil, fmt.Errorf("langdb: %s: missing specfile", l.ID)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("langdb: duplicate id %s", l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return &c, nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("langdb: %w", err)
	}
	return Parse(data)
}

// Find returns the language with the given ID.
func (c *Catalog) Find(id string) (*Language, bool) {
	for i := range c.Languages {
		if c.Languages[i].ID == id {
			return &c.Languages[i], true
		}
	}
	return nil, false
}

// IDs returns the language identifiers in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Languages))
	for i := range c.Languages {
		ids[i] = c.Languages[i].ID
	}
	return ids
}

// ResolveSpec locates the language's spec document. Absolute paths are
// checked directly; relative paths are tried against each search
// directory in order.
func (l *Language) ResolveSpec(searchPath ...string) (string, error) {
	if filepath.IsAbs(l.SpecFile) {
		if _, err := os.Stat(l.SpecFile); err != nil {
			return "", fmt.Errorf("langdb: %s: %w", l.ID, err)
		}
		return l.SpecFile, nil
	}
	for _, dir := range searchPath {
		p := filepath.Join(dir, l.SpecFile)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("langdb: %s: specfile %q not found in search path", l.ID, l.SpecFile)
}

// ContextNames returns the context-variable names sorted, so callers
// can apply defaults in a stable order.
func (l *Language) ContextNames() []string {
	names := make([]string, 0, len(l.Context))
	for name := range l.Context {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
