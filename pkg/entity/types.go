package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// EntityType identifies the kind of entity an observation describes
type EntityType string

const (
	Organization EntityType = "/Organization"
	Person       EntityType = "/Person"
)

// CodeOrigin is the namespace of the system that produced an entity code
type CodeOrigin string

// BaseOrigin is the root origin every provider-specific origin derives from
const BaseOrigin CodeOrigin = "CluedIn"

// Specific derives a provider-specific origin, e.g. CluedIn(glassDoor)
func (o CodeOrigin) Specific(name string) CodeOrigin {
	return CodeOrigin(fmt.Sprintf("%s(%s)", o, name))
}

// EntityCode is the deterministic identity key of an entity observation
type EntityCode struct {
	Type   EntityType `json:"type"`
	Origin CodeOrigin `json:"origin"`
	Value  string     `json:"value"`
}

// NewEntityCode creates a code for the given type, origin and external id
func NewEntityCode(entityType EntityType, origin CodeOrigin, value string) EntityCode {
	return EntityCode{Type: entityType, Origin: origin, Value: value}
}

func (c EntityCode) String() string {
	return fmt.Sprintf("%s#%s:%s", c.Type, c.Origin, c.Value)
}

// Metadata is the entity part a clue carries: identity, codes and properties
type Metadata struct {
	EntityType       EntityType        `json:"entityType"`
	Name             string            `json:"name"`
	OriginEntityCode EntityCode        `json:"originEntityCode"`
	Codes            []EntityCode      `json:"codes"`
	Properties       map[string]string `json:"properties"`
}

// NewMetadata returns metadata with an initialized property map
func NewMetadata() *Metadata {
	return &Metadata{Properties: make(map[string]string)}
}

// AddCode adds a code unless it is already present
func (m *Metadata) AddCode(code EntityCode) {
	for _, existing := range m.Codes {
		if existing == code {
			return
		}
	}
	m.Codes = append(m.Codes, code)
}

// HasCode reports whether the code is part of the metadata code set
func (m *Metadata) HasCode(code EntityCode) bool {
	for _, existing := range m.Codes {
		if existing == code {
			return true
		}
	}
	return false
}

// PreviewImage is a downloaded image attached to an observation
type PreviewImage struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// Clue is a partial, attributable observation about one entity
type Clue struct {
	ID           uuid.UUID     `json:"id"`
	Code         EntityCode    `json:"code"`
	Data         Metadata      `json:"data"`
	PreviewImage *PreviewImage `json:"previewImage,omitempty"`
}

// NewClue creates a clue for the given origin code
func NewClue(code EntityCode) *Clue {
	return &Clue{
		ID:   uuid.New(),
		Code: code,
		Data: Metadata{Properties: make(map[string]string)},
	}
}
