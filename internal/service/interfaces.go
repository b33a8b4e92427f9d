package service

import (
	"context"

	"glassdoor-search/pkg/api"
	"glassdoor-search/pkg/entity"
	"glassdoor-search/pkg/pipeline"
)

// SearchService runs provider searches for entity requests
type SearchService interface {
	Run(ctx context.Context, req *entity.Request) (*pipeline.Outcome, error)
	RunBatch(ctx context.Context, reqs []*entity.Request) ([]*pipeline.Outcome, error)
}

// StatsService exposes search client counters
type StatsService interface {
	Stats() api.ClientStats
}
