package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"glassdoor-search/internal/service"
	"glassdoor-search/pkg/entity"
	"glassdoor-search/pkg/logger"
)

// MaxBatchSize bounds the number of requests in one batch call
const MaxBatchSize = 100

type Controller struct {
	search  service.SearchService
	stats   service.StatsService
	started time.Time
	log     *logger.Logger
}

// SearchRequest is the body of a search call
type SearchRequest struct {
	ID                string               `json:"id"`
	EntityType        string               `json:"entityType"`
	Name              string               `json:"name"`
	DisplayName       string               `json:"displayName"`
	OrganizationNames []string             `json:"organizationNames"`
	PriorResults      []entity.PriorResult `json:"priorResults"`
}

// BatchRequest is the body of a batch search call
type BatchRequest struct {
	Requests []SearchRequest `json:"requests"`
}

type StatusResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Metrics   map[string]interface{} `json:"metrics"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewController(search service.SearchService, stats service.StatsService) *Controller {
	return &Controller{
		search:  search,
		stats:   stats,
		started: time.Now(),
		log:     logger.GetLogger().WithComponent("handler"),
	}
}

// NewApp creates the fiber app with the controller routes registered
func NewApp(c *Controller, readTimeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "glassdoor-search",
		ReadTimeout:           readTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	c.Register(app)
	return app
}

// Register adds the controller routes to app
func (c *Controller) Register(app *fiber.App) {
	app.Get("/health", c.Health)

	v1 := app.Group("/v1")
	v1.Post("/search", c.Search)
	v1.Post("/search/batch", c.SearchBatch)
}

// Health reports liveness and client counters
func (c *Controller) Health(ctx *fiber.Ctx) error {
	metrics := map[string]interface{}{}
	if c.stats != nil {
		stats := c.stats.Stats()
		metrics["total_requests"] = stats.TotalRequests
		metrics["failed_requests"] = stats.FailedRequests
		metrics["empty_responses"] = stats.EmptyResponses
		metrics["credentials"] = stats.Credentials
		if stats.Limiter != nil {
			metrics["in_flight"] = stats.Limiter.CurrentActive
			metrics["limiter_timeouts"] = stats.Limiter.TimeoutFailures
		}
	}

	return ctx.JSON(StatusResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Metrics:   metrics,
	})
}

// Search runs one entity request
func (c *Controller) Search(ctx *fiber.Ctx) error {
	var body SearchRequest
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	req, err := body.toEntity()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	outcome, err := c.search.Run(ctx.UserContext(), req)
	if err != nil {
		return c.searchFailed(err)
	}
	return ctx.JSON(outcome)
}

// SearchBatch runs several entity requests concurrently
func (c *Controller) SearchBatch(ctx *fiber.Ctx) error {
	var body BatchRequest
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(body.Requests) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "requests cannot be empty")
	}
	if len(body.Requests) > MaxBatchSize {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("at most %d requests per batch", MaxBatchSize))
	}

	reqs := make([]*entity.Request, 0, len(body.Requests))
	for i, item := range body.Requests {
		req, err := item.toEntity()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("request %d: %v", i, err))
		}
		reqs = append(reqs, req)
	}

	outcomes, err := c.search.RunBatch(ctx.UserContext(), reqs)
	if err != nil {
		return c.searchFailed(err)
	}
	return ctx.JSON(fiber.Map{"outcomes": outcomes})
}

func (c *Controller) searchFailed(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "search canceled")
	}
	c.log.WithError(err).Error("Search failed")
	return fiber.NewError(fiber.StatusInternalServerError, "search failed")
}

func errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return ctx.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

func (r SearchRequest) toEntity() (*entity.Request, error) {
	if strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.DisplayName) == "" && len(r.OrganizationNames) == 0 {
		return nil, fmt.Errorf("name, displayName or organizationNames is required")
	}

	req := &entity.Request{
		EntityType:   entity.Organization,
		Name:         r.Name,
		DisplayName:  r.DisplayName,
		PriorResults: r.PriorResults,
	}

	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid id: %w", err)
		}
		req.ID = id
	}

	if r.EntityType != "" {
		entityType := r.EntityType
		if !strings.HasPrefix(entityType, "/") {
			entityType = "/" + entityType
		}
		req.EntityType = entity.EntityType(entityType)
	}

	if len(r.OrganizationNames) > 0 {
		req.QueryParameters = map[string][]string{
			entity.OrganizationNameProperty: r.OrganizationNames,
		}
	}

	return req, nil
}
