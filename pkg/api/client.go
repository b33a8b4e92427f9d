package api

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"

	"glassdoor-search/pkg/logger"
)

// EmployerSearcher searches the Glassdoor employer index by name
type EmployerSearcher interface {
	SearchEmployers(ctx context.Context, name string) ([]Employer, error)
}

// Client calls the Glassdoor employer search API, rotating credentials per call.
// It performs exactly one request per search and never retries.
type Client struct {
	config      ClientConfig
	credentials *CredentialPool
	http        *fasthttp.Client
	limiter     *ConcurrencyLimiter
	log         *logger.Logger
	secureLog   *logger.SecurityLogger

	// Metrics
	totalRequests  uint64
	failedRequests uint64
	emptyResponses uint64
}

// ClientStats is a snapshot of the client counters
type ClientStats struct {
	TotalRequests  uint64        `json:"total_requests"`
	FailedRequests uint64        `json:"failed_requests"`
	EmptyResponses uint64        `json:"empty_responses"`
	Credentials    int           `json:"credentials"`
	Limiter        *LimiterStats `json:"limiter,omitempty"`
}

// NewClient creates a search client over the given credential pool
func NewClient(config ClientConfig, credentials *CredentialPool) *Client {
	config = config.withDefaults()
	log := logger.GetLogger().WithComponent("glassdoor_client")

	c := &Client{
		config:      config,
		credentials: credentials,
		http:        newFastHTTPClient(config),
		log:         log,
		secureLog:   logger.NewSecurityLogger(log),
	}
	if config.MaxInFlight > 0 {
		c.limiter = NewConcurrencyLimiter(config.MaxInFlight, config.AcquireTimeout)
	}
	return c
}

// SearchEmployers returns the employers matching name, in response order.
// An empty name, 204, 404 or a response without an employer list yield no
// employers and no error.
func (c *Client) SearchEmployers(ctx context.Context, name string) ([]Employer, error) {
	if name == "" {
		return nil, nil
	}

	credential := c.credentials.Next()
	atomic.AddUint64(&c.totalRequests, 1)
	start := time.Now()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	c.buildRequest(req, credential, name)

	c.secureLog.SafeDebug("Starting employer search", map[string]interface{}{
		"query":      name,
		"partner_id": credential.PartnerID,
		"api_key":    credential.Key,
	})

	if err := c.do(ctx, req, resp); err != nil {
		atomic.AddUint64(&c.failedRequests, 1)
		c.log.WithError(err).WithField("query", name).Warn("Employer search request failed")
		return nil, &TransportError{Cause: err}
	}

	statusCode := resp.StatusCode()
	log := c.log.WithFields(map[string]interface{}{
		"query":       name,
		"status":      statusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	switch statusCode {
	case fasthttp.StatusOK:
		employers, err := decodeEmployers(resp.Body())
		if err != nil {
			atomic.AddUint64(&c.failedRequests, 1)
			log.WithError(err).Warn("Employer search returned an undecodable body")
			return nil, &UnexpectedResponseError{StatusCode: statusCode, Cause: err}
		}
		if len(employers) == 0 {
			atomic.AddUint64(&c.emptyResponses, 1)
		}
		log.WithField("employers", len(employers)).Debug("Employer search completed")
		return employers, nil

	case fasthttp.StatusNoContent, fasthttp.StatusNotFound:
		atomic.AddUint64(&c.emptyResponses, 1)
		log.Debug("Employer search found nothing")
		return nil, nil

	default:
		atomic.AddUint64(&c.failedRequests, 1)
		log.Warn("Employer search returned an unexpected status")
		return nil, &UnexpectedResponseError{StatusCode: statusCode}
	}
}

// Stats returns a snapshot of the client counters
func (c *Client) Stats() ClientStats {
	stats := ClientStats{
		TotalRequests:  atomic.LoadUint64(&c.totalRequests),
		FailedRequests: atomic.LoadUint64(&c.failedRequests),
		EmptyResponses: atomic.LoadUint64(&c.emptyResponses),
		Credentials:    c.credentials.Size(),
	}
	if c.limiter != nil {
		limiter := c.limiter.Stats()
		stats.Limiter = &limiter
	}
	return stats
}

// Close releases idle connections
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// buildRequest fills req with
// GET {endpoint}/api.htm?t.p=&t.k=&format=json&v=1&action=employers&q=
func (c *Client) buildRequest(req *fasthttp.Request, credential Credential, name string) {
	req.SetRequestURI(strings.TrimRight(c.config.Endpoint, "/") + "/api.htm")
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	args := req.URI().QueryArgs()
	args.Add("t.p", strconv.Itoa(credential.PartnerID))
	args.Add("t.k", credential.Key)
	args.Add("format", "json")
	args.Add("v", "1")
	args.Add("action", "employers")
	args.Add("q", name)
}

// do executes the request bounded by the configured timeout and the context
// deadline, holding a limiter permit when one is configured
func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx); err != nil {
			return err
		}
		defer c.limiter.Release()
	}

	deadline := time.Now().Add(c.config.RequestTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	return c.http.DoDeadline(req, resp, deadline)
}

func decodeEmployers(body []byte) ([]Employer, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Response == nil {
		return nil, nil
	}
	return envelope.Response.Employers, nil
}
