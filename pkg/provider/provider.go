package provider

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"glassdoor-search/pkg/api"
	"glassdoor-search/pkg/entity"
	"glassdoor-search/pkg/imagefetch"
	"glassdoor-search/pkg/logger"
	"glassdoor-search/pkg/names"
)

// ID identifies the Glassdoor provider in queries and prior results
var ID = uuid.MustParse("7b3cc1e4-60d2-4b6f-9a3e-5c1d2e8f4a90")

// Origin is the code origin of every Glassdoor entity code
var Origin = entity.BaseOrigin.Specific("glassDoor")

// WebsiteOrigin is the code origin of website derived organization codes
var WebsiteOrigin = entity.BaseOrigin.Specific("website")

// Result is one employer returned for a query
type Result struct {
	Query    entity.Query `json:"query"`
	Employer api.Employer `json:"employer"`
}

// Provider searches Glassdoor for organizations and maps employers to clues
type Provider struct {
	searcher   api.EmployerSearcher
	images     imagefetch.ImageFetcher
	nameFilter names.Filter
	log        *logger.Logger
}

// Option configures a Provider
type Option func(*Provider)

// WithImageFetcher sets the downloader used for preview images
func WithImageFetcher(fetcher imagefetch.ImageFetcher) Option {
	return func(p *Provider) { p.images = fetcher }
}

// WithNameFilter sets the domain filter for names not worth searching
func WithNameFilter(filter names.Filter) Option {
	return func(p *Provider) { p.nameFilter = filter }
}

// New creates a provider searching through searcher
func New(searcher api.EmployerSearcher, opts ...Option) *Provider {
	p := &Provider{
		searcher:   searcher,
		images:     imagefetch.Disabled{},
		nameFilter: names.NoFilter,
		log:        logger.GetLogger().WithComponent("glassdoor_provider"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID returns the provider id
func (p *Provider) ID() uuid.UUID {
	return ID
}

// Accepts reports whether the provider can search for the entity type
func (p *Provider) Accepts(entityType entity.EntityType) bool {
	return entityType == entity.Organization
}

// BuildQueries returns one name query per distinct normalized variant of the
// request's organization names, skipping filtered names and names this
// provider already returned results for. Queries are ordered by value.
func (p *Provider) BuildQueries(ctx context.Context, req *entity.Request) []entity.Query {
	if req == nil || !p.Accepts(req.EntityType) {
		return nil
	}

	candidates := append([]string(nil), req.QueryParameters[entity.OrganizationNameProperty]...)
	if req.Name != "" {
		candidates = append(candidates, req.Name)
	}
	if req.DisplayName != "" {
		candidates = append(candidates, req.DisplayName)
	}

	exclude := names.Or(p.nameFilter, priorResultFilter(req.PriorResultNames(ID)))

	var queries []entity.Query
	for _, value := range names.NormalizedVariants(candidates) {
		if exclude(value) {
			p.log.WithField("value", value).Debug("Skipping filtered name")
			continue
		}
		queries = append(queries, entity.NewQuery(ID, req.EntityType, entity.QueryParameterName, value))
	}

	return queries
}

// priorResultFilter excludes names equal, ignoring case, to a prior result name
func priorResultFilter(priorNames []string) names.Filter {
	return func(name string) bool {
		for _, prior := range priorNames {
			if strings.EqualFold(prior, name) {
				return true
			}
		}
		return false
	}
}

// ExecuteSearch runs one query against Glassdoor. Queries without a name
// value yield no results and make no request.
func (p *Provider) ExecuteSearch(ctx context.Context, query entity.Query) ([]Result, error) {
	name := query.Value(entity.QueryParameterName)
	if name == "" {
		return nil, nil
	}

	employers, err := p.searcher.SearchEmployers(ctx, name)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(employers))
	for _, employer := range employers {
		results = append(results, Result{Query: query, Employer: employer})
	}
	return results, nil
}
