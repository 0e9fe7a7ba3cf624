// Package config loads the layered generator configuration.
//
// The effective configuration is the deep merge of two YAML documents (base
// plus overrides). Nested maps merge key-by-key; scalars and lists from the
// overrides document replace the base value wholesale. Lookups go through
// typed accessors that return a caller-supplied default on any missing path
// segment, so an absent setting is never an error.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config is an immutable-by-convention nested mapping of generator settings.
type Config struct {
	data map[string]any
}

// New wraps an already-built settings tree. Used by tests and by callers that
// assemble configuration programmatically.
func New(data map[string]any) *Config {
	if data == nil {
		data = map[string]any{}
	}
	return &Config{data: data}
}

// Load reads the base document and, when present, the overrides document, and
// returns their deep merge. A missing overrides file is not an error; a
// missing base file is.
func Load(basePath, overridesPath string) (*Config, error) {
	base, err := readYAML(basePath)
	if err != nil {
		return nil, fmt.Errorf("load base config %q: %w", basePath, err)
	}
	overrides := map[string]any{}
	if overridesPath != "" {
		if _, statErr := os.Stat(overridesPath); statErr == nil {
			overrides, err = readYAML(overridesPath)
			if err != nil {
				return nil, fmt.Errorf("load overrides config %q: %w", overridesPath, err)
			}
		} else {
			log.Debug().Str("path", overridesPath).Msg("No overrides config, using base only")
		}
	}
	return &Config{data: deepMerge(base, overrides)}, nil
}

func readYAML(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// deepMerge merges b over a. Maps recurse; everything else (scalars, lists)
// is replaced by the override value.
func deepMerge(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if vm, ok := v.(map[string]any); ok {
			if om, ok := out[k].(map[string]any); ok {
				out[k] = deepMerge(om, vm)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// lookup walks a dotted path through the settings tree.
func (c *Config) lookup(path string) (any, bool) {
	var node any = c.data
	for _, part := range strings.Split(path, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// Set writes a value at a dotted path, creating intermediate maps as needed.
// It exists for CLI overrides (e.g. forcing the outage count) applied before
// generation starts; the configuration is treated as immutable afterwards.
func (c *Config) Set(path string, value any) {
	parts := strings.Split(path, ".")
	node := c.data
	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[part] = next
		}
		node = next
	}
	node[parts[len(parts)-1]] = value
}

// Float returns the float at path, or def when the path is missing or not
// numeric. YAML integers coerce to float64.
func (c *Config) Float(path string, def float64) float64 {
	v, ok := c.lookup(path)
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		return def
	}
	return f
}

// Int returns the integer at path, or def.
func (c *Config) Int(path string, def int) int {
	v, ok := c.lookup(path)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// String returns the string at path, or def.
func (c *Config) String(path, def string) string {
	v, ok := c.lookup(path)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// Bool returns the boolean at path, or def.
func (c *Config) Bool(path string, def bool) bool {
	v, ok := c.lookup(path)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Strings returns the string list at path, or def.
func (c *Config) Strings(path string, def []string) []string {
	v, ok := c.lookup(path)
	if !ok {
		return def
	}
	items, ok := v.([]any)
	if !ok {
		return def
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return def
		}
		out = append(out, s)
	}
	return out
}

// Table returns the label→weight mapping at path, or def when the path is
// missing or not a mapping of numbers.
func (c *Config) Table(path string, def map[string]float64) map[string]float64 {
	v, ok := c.lookup(path)
	if !ok {
		return def
	}
	m, ok := v.(map[string]any)
	if !ok {
		return def
	}
	out := make(map[string]float64, len(m))
	for k, raw := range m {
		f, ok := toFloat(raw)
		if !ok {
			return def
		}
		out[k] = f
	}
	return out
}

// IntTable returns an integer-labelled weight mapping at path, or def. YAML
// keys are strings; labels that do not parse as integers invalidate the table.
func (c *Config) IntTable(path string, def map[int]float64) map[int]float64 {
	v, ok := c.lookup(path)
	if !ok {
		return def
	}
	m, ok := v.(map[string]any)
	if !ok {
		return def
	}
	out := make(map[int]float64, len(m))
	for k, raw := range m {
		label, err := strconv.Atoi(k)
		if err != nil {
			return def
		}
		f, ok := toFloat(raw)
		if !ok {
			return def
		}
		out[label] = f
	}
	return out
}

// Keys returns the sorted child keys of the mapping at path, or nil.
func (c *Config) Keys(path string) []string {
	v, ok := c.lookup(path)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JSON renders the effective configuration as indented JSON, for the run's
// metadata directory.
func (c *Config) JSON() ([]byte, error) {
	return json.MarshalIndent(c.data, "", "  ")
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
