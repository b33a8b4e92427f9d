package entity

import "github.com/google/uuid"

// QueryParameterName is the parameter key holding the searched name
const QueryParameterName = "Name"

// OrganizationNameProperty is the core vocabulary key for recorded organization names
const OrganizationNameProperty = "organization.name"

// PriorResult is a result a provider already returned for the same entity
type PriorResult struct {
	ProviderID uuid.UUID `json:"providerId"`
	Name       string    `json:"name"`
}

// Request asks the providers to enrich one entity
type Request struct {
	ID              uuid.UUID           `json:"id"`
	EntityType      EntityType          `json:"entityType"`
	Name            string              `json:"name"`
	DisplayName     string              `json:"displayName"`
	QueryParameters map[string][]string `json:"queryParameters"`
	PriorResults    []PriorResult       `json:"priorResults"`
}

// PriorResultNames returns the names of prior results produced by the given provider
func (r *Request) PriorResultNames(providerID uuid.UUID) []string {
	var names []string
	for _, result := range r.PriorResults {
		if result.ProviderID == providerID {
			names = append(names, result.Name)
		}
	}
	return names
}

// Query is one search attempt issued by a provider
type Query struct {
	ProviderID uuid.UUID           `json:"providerId"`
	EntityType EntityType          `json:"entityType"`
	Parameters map[string][]string `json:"parameters"`
}

// NewQuery creates a query with a single parameter value
func NewQuery(providerID uuid.UUID, entityType EntityType, key, value string) Query {
	return Query{
		ProviderID: providerID,
		EntityType: entityType,
		Parameters: map[string][]string{key: {value}},
	}
}

// Value returns the first value of a parameter, or "" when absent
func (q Query) Value(key string) string {
	values := q.Parameters[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
