package vocabulary

import (
	"glassdoor-search/pkg/entity"
)

// DataType describes how the host interprets a property value
type DataType string

const (
	Text              DataType = "Text"
	Number            DataType = "Number"
	Boolean           DataType = "Boolean"
	URI               DataType = "Uri"
	DateTime          DataType = "DateTime"
	GeographyLocation DataType = "GeographyLocation"
)

// Visibility controls whether the host shows a property by default
type Visibility string

const (
	Visible Visibility = "Visible"
	Hidden  Visibility = "Hidden"
)

// Key is a single typed property of a vocabulary
type Key struct {
	Name        string     `json:"name"`
	FullName    string     `json:"fullName"`
	Group       string     `json:"group"`
	DataType    DataType   `json:"dataType"`
	Visibility  Visibility `json:"visibility"`
	DisplayName string     `json:"displayName,omitempty"`
}

// KeyOption customizes a key when it is added
type KeyOption func(*Key)

// WithType sets the key data type (Text by default)
func WithType(t DataType) KeyOption {
	return func(k *Key) { k.DataType = t }
}

// WithVisibility sets the key visibility (Visible by default)
func WithVisibility(v Visibility) KeyOption {
	return func(k *Key) { k.Visibility = v }
}

// WithDisplayName sets a human readable name for the key
func WithDisplayName(name string) KeyOption {
	return func(k *Key) { k.DisplayName = name }
}

// Vocabulary is a named, prefixed set of keys plus mappings to core keys
type Vocabulary struct {
	Name         string
	KeyPrefix    string
	KeySeparator string
	Grouping     entity.EntityType

	keys     []Key
	index    map[string]int
	mappings map[string]string
}

// New creates an empty vocabulary using "." as key separator
func New(name, prefix string, grouping entity.EntityType) *Vocabulary {
	return &Vocabulary{
		Name:         name,
		KeyPrefix:    prefix,
		KeySeparator: ".",
		Grouping:     grouping,
		index:        make(map[string]int),
		mappings:     make(map[string]string),
	}
}

// Add registers a key in a group and returns its fully qualified name
func (v *Vocabulary) Add(group, name string, opts ...KeyOption) string {
	key := Key{
		Name:       name,
		FullName:   v.KeyPrefix + v.KeySeparator + name,
		Group:      group,
		DataType:   Text,
		Visibility: Visible,
	}
	for _, opt := range opts {
		opt(&key)
	}

	if i, exists := v.index[key.FullName]; exists {
		v.keys[i] = key
		return key.FullName
	}
	v.index[key.FullName] = len(v.keys)
	v.keys = append(v.keys, key)
	return key.FullName
}

// AddMapping maps a vocabulary key onto a core vocabulary key
func (v *Vocabulary) AddMapping(from, to string) {
	v.mappings[from] = to
}

// Key looks up a key by its fully qualified name
func (v *Vocabulary) Key(fullName string) (Key, bool) {
	i, ok := v.index[fullName]
	if !ok {
		return Key{}, false
	}
	return v.keys[i], true
}

// Keys returns all keys in registration order
func (v *Vocabulary) Keys() []Key {
	keys := make([]Key, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// Mapping returns the core key a vocabulary key maps onto
func (v *Vocabulary) Mapping(fullName string) (string, bool) {
	to, ok := v.mappings[fullName]
	return to, ok
}

// Mappings returns a copy of all core key mappings
func (v *Vocabulary) Mappings() map[string]string {
	out := make(map[string]string, len(v.mappings))
	for k, val := range v.mappings {
		out[k] = val
	}
	return out
}
