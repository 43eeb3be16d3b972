package catalog

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// fileDefinition mirrors Definition with TOML field names.
type fileDefinition struct {
	ID            string   `toml:"id"`
	Name          string   `toml:"name"`
	Category      string   `toml:"category"`
	MaxStackSize  int      `toml:"max_stack_size"`
	Stackable     *bool    `toml:"stackable"`
	HasDurability bool     `toml:"has_durability"`
	Tags          []string `toml:"tags"`
}

// fileCatalog is the root of a TOML catalog file: a list of [[item]] tables.
type fileCatalog struct {
	Items []fileDefinition `toml:"item"`
}

// LoadFile reads a TOML catalog file into a registry. Items omit
// `stackable` to inherit the category default (false for tools, weapons,
// and armor; true otherwise).
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes TOML catalog bytes into a registry.
func Parse(raw []byte) (*Registry, error) {
	var fc fileCatalog
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog toml: %w", err)
	}

	defs := make([]Definition, 0, len(fc.Items))
	for _, item := range fc.Items {
		def := Definition{
			ID:            item.ID,
			Name:          item.Name,
			Category:      Category(item.Category),
			MaxStackSize:  item.MaxStackSize,
			HasDurability: item.HasDurability,
			Tags:          item.Tags,
		}
		if item.Stackable != nil {
			def.Stackable = *item.Stackable
		} else {
			def.Stackable = def.Category.DefaultMaxStackSize() > 1
		}
		defs = append(defs, def)
	}
	return NewRegistry(defs...)
}
