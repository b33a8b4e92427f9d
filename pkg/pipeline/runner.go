package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"glassdoor-search/pkg/api"
	"glassdoor-search/pkg/entity"
	"glassdoor-search/pkg/logger"
	"glassdoor-search/pkg/provider"
)

// Config controls how searches are run
type Config struct {
	MaxRetries  int
	RetryDelay  time.Duration
	Concurrency int

	// BreakerFailures consecutive search failures stop further searches for
	// BreakerReset; 0 disables the breaker
	BreakerFailures int
	BreakerReset    time.Duration
}

// DefaultConfig returns the runner defaults
func DefaultConfig() Config {
	return Config{
		MaxRetries:      2,
		RetryDelay:      500 * time.Millisecond,
		Concurrency:     4,
		BreakerFailures: 5,
		BreakerReset:    30 * time.Second,
	}
}

// QueryError records a query whose search failed
type QueryError struct {
	Query string `json:"query"`
	Error string `json:"error"`
	err   error
}

// Unwrap returns the search error
func (e QueryError) Unwrap() error {
	return e.err
}

// Outcome is everything one request produced
type Outcome struct {
	RequestID uuid.UUID          `json:"requestId"`
	Queries   []string           `json:"queries"`
	Results   int                `json:"results"`
	Clues     []*entity.Clue     `json:"clues"`
	Primary   []*entity.Metadata `json:"primary"`
	Errors    []QueryError       `json:"errors,omitempty"`
	Duration  time.Duration      `json:"duration"`
}

// Runner drives the provider for whole requests: it builds the queries,
// executes each one under the retry policy and maps the results to clues.
type Runner struct {
	provider    *provider.Provider
	retry       *api.SimpleRetry
	breaker     *api.CircuitBreaker
	concurrency int
	log         *logger.Logger
}

// NewRunner creates a runner over the given provider
func NewRunner(p *provider.Provider, config Config) *Runner {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}

	r := &Runner{
		provider:    p,
		retry:       api.NewSimpleRetry(config.MaxRetries, config.RetryDelay),
		concurrency: config.Concurrency,
		log:         logger.GetLogger().WithComponent("pipeline"),
	}
	if config.BreakerFailures > 0 {
		r.breaker = api.NewCircuitBreaker(config.BreakerFailures, config.BreakerReset, 1)
	}
	return r
}

// Run processes one request. Failed queries are recorded in the outcome and
// do not stop the other queries; only cancellation fails the run.
func (r *Runner) Run(ctx context.Context, req *entity.Request) (*Outcome, error) {
	start := time.Now()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	outcome := &Outcome{RequestID: req.ID}
	log := r.log.WithField("request_id", req.ID.String())

	for _, query := range r.provider.BuildQueries(ctx, req) {
		value := query.Value(entity.QueryParameterName)
		outcome.Queries = append(outcome.Queries, value)

		var results []provider.Result
		err := r.retry.Execute(ctx, func() error {
			return r.search(ctx, query, &results)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.WithError(err).WithField("query", value).Warn("Search failed")
			outcome.Errors = append(outcome.Errors, QueryError{Query: value, Error: err.Error(), err: err})
			continue
		}

		outcome.Results += len(results)
		for _, result := range results {
			outcome.Clues = append(outcome.Clues, r.provider.BuildClues(ctx, result)...)
			outcome.Primary = append(outcome.Primary, r.provider.PrimaryEntityMetadata(result))

			// a rerun of the request skips names already found
			req.PriorResults = append(req.PriorResults, entity.PriorResult{
				ProviderID: r.provider.ID(),
				Name:       result.Employer.Name,
			})
		}
	}

	outcome.Duration = time.Since(start)
	log.WithFields(map[string]interface{}{
		"queries":  len(outcome.Queries),
		"results":  outcome.Results,
		"clues":    len(outcome.Clues),
		"failures": len(outcome.Errors),
		"duration": outcome.Duration.String(),
	}).Info("Request processed")

	return outcome, nil
}

// search executes one query, through the circuit breaker when configured
func (r *Runner) search(ctx context.Context, query entity.Query, results *[]provider.Result) error {
	execute := func() error {
		var err error
		*results, err = r.provider.ExecuteSearch(ctx, query)
		return err
	}

	if r.breaker == nil {
		return execute()
	}
	return r.breaker.Execute(execute)
}

// RunBatch processes requests concurrently, at most Concurrency at a time.
// Outcomes are returned in request order.
func (r *Runner) RunBatch(ctx context.Context, reqs []*entity.Request) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			outcome, err := r.Run(ctx, req)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
