package connection

import (
	"sort"
	"strconv"
)

// Properties is a resolved set of store client properties.
//
// Resources are merged in load order, so later resources override earlier
// ones, except for properties an earlier resource declared final. Set always
// overrides.
type Properties struct {
	values  map[string]string
	final   map[string]bool
	sources map[string]string
}

// NewProperties creates an empty property set.
func NewProperties() *Properties {
	return &Properties{
		values:  make(map[string]string),
		final:   make(map[string]bool),
		sources: make(map[string]string),
	}
}

// Get returns the value of key and whether it is set.
func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// GetInt returns the value of key as an int, or fallback when the key is
// unset or not an integer.
func (p *Properties) GetInt(key string, fallback int) int {
	v, ok := p.values[key]
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}

// Set assigns key programmatically, ignoring finality.
func (p *Properties) Set(key, value string) {
	p.values[key] = value
	p.sources[key] = "programmatically"
}

// SetInt assigns an integer value to key.
func (p *Properties) SetInt(key string, value int) {
	p.Set(key, strconv.Itoa(value))
}

// IsFinal reports whether a loaded resource declared key final.
func (p *Properties) IsFinal(key string) bool {
	return p.final[key]
}

// Source returns where the current value of key came from: a resource URL,
// or "programmatically".
func (p *Properties) Source(key string) string {
	return p.sources[key]
}

// Keys returns all keys, sorted.
func (p *Properties) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return len(p.values)
}

// merge applies one loaded property and reports whether it took effect.
func (p *Properties) merge(prop property, source string) bool {
	if p.final[prop.Name] {
		return false
	}

	p.values[prop.Name] = prop.Value
	p.sources[prop.Name] = source
	if prop.Final {
		p.final[prop.Name] = true
	}

	return true
}
