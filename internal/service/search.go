package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"glassdoor-search/internal/config"
	"glassdoor-search/pkg/api"
	"glassdoor-search/pkg/entity"
	"glassdoor-search/pkg/imagefetch"
	"glassdoor-search/pkg/names"
	"glassdoor-search/pkg/pipeline"
	"glassdoor-search/pkg/provider"
)

// Search wires the search client, provider and runner built from one configuration
type Search struct {
	*pipeline.Runner
	client *api.Client
	images *imagefetch.Fetcher
}

// NewSearch builds the search stack for cfg
func NewSearch(cfg *config.Config) (*Search, error) {
	pool, err := api.NewCredentialPool(cfg.Provider.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential pool: %w", err)
	}

	s := &Search{client: api.NewClient(cfg.ClientConfig(), pool)}

	opts := []provider.Option{
		provider.WithNameFilter(names.NewExclusionFilter(cfg.Names.Excluded)),
	}
	if cfg.Images.Enabled {
		s.images = imagefetch.NewFetcher(cfg.ImageConfig())
		opts = append(opts, provider.WithImageFetcher(s.images))
	}

	s.Runner = pipeline.NewRunner(provider.New(s.client, opts...), cfg.PipelineConfig())
	return s, nil
}

// Stats returns the search client counters
func (s *Search) Stats() api.ClientStats {
	return s.client.Stats()
}

// Close releases connections held by the client and image fetcher
func (s *Search) Close() {
	s.client.Close()
	if s.images != nil {
		s.images.Close()
	}
}

// Reloadable serves searches from the most recently applied configuration
type Reloadable struct {
	current atomic.Pointer[Search]
}

// NewReloadable builds the search stack for cfg
func NewReloadable(cfg *config.Config) (*Reloadable, error) {
	search, err := NewSearch(cfg)
	if err != nil {
		return nil, err
	}

	r := &Reloadable{}
	r.current.Store(search)
	return r, nil
}

// Apply swaps in a search stack built from cfg. On error the current one stays.
func (r *Reloadable) Apply(cfg *config.Config) error {
	search, err := NewSearch(cfg)
	if err != nil {
		return err
	}

	if old := r.current.Swap(search); old != nil {
		old.Close()
	}
	return nil
}

func (r *Reloadable) Run(ctx context.Context, req *entity.Request) (*pipeline.Outcome, error) {
	return r.current.Load().Run(ctx, req)
}

func (r *Reloadable) RunBatch(ctx context.Context, reqs []*entity.Request) ([]*pipeline.Outcome, error) {
	return r.current.Load().RunBatch(ctx, reqs)
}

func (r *Reloadable) Stats() api.ClientStats {
	return r.current.Load().Stats()
}

// Close releases the current search stack
func (r *Reloadable) Close() {
	if search := r.current.Load(); search != nil {
		search.Close()
	}
}
