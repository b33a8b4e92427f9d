package imagefetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"glassdoor-search/pkg/entity"
	"glassdoor-search/pkg/logger"
	"glassdoor-search/pkg/storage"
)

var (
	// ErrEmptyURL is returned when there is nothing to download
	ErrEmptyURL = errors.New("image url is empty")
	// ErrDisabled is returned by a fetcher that never downloads
	ErrDisabled = errors.New("image download disabled")
)

// ImageFetcher downloads preview images
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*entity.PreviewImage, error)
}

// Config controls preview image downloads
type Config struct {
	Timeout   time.Duration
	MaxBytes  int
	UserAgent string
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultConfig returns the download settings used when none are configured
func DefaultConfig() Config {
	return Config{
		Timeout:   10 * time.Second,
		MaxBytes:  2 << 20,
		UserAgent: "Mozilla/5.0",
		CacheSize: 512,
		CacheTTL:  time.Hour,
	}
}

// Fetcher downloads images over fasthttp and keeps recent ones in memory
type Fetcher struct {
	client *fasthttp.Client
	config Config
	cache  *storage.Cache[*entity.PreviewImage]
	log    *logger.Logger
}

// NewFetcher creates an image fetcher
func NewFetcher(config Config) *Fetcher {
	defaults := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxBytes <= 0 {
		config.MaxBytes = defaults.MaxBytes
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	f := &Fetcher{
		client: &fasthttp.Client{
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxResponseBodySize: config.MaxBytes,
		},
		config: config,
		log:    logger.GetLogger().WithComponent("imagefetch"),
	}
	if config.CacheSize > 0 {
		f.cache = storage.NewCache[*entity.PreviewImage](config.CacheSize, config.CacheTTL)
	}
	return f
}

// Fetch downloads the image at url
func (f *Fetcher) Fetch(ctx context.Context, url string) (*entity.PreviewImage, error) {
	url = absoluteURL(url)
	if url == "" {
		return nil, ErrEmptyURL
	}

	if f.cache != nil {
		if image, ok := f.cache.Get(url); ok {
			return image, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(f.config.UserAgent)
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	deadline := time.Now().Add(f.config.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := f.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("image request failed: HTTP %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("image response is empty")
	}

	// Copy, the response buffer goes back to the pool
	data := make([]byte, len(body))
	copy(data, body)

	contentType := string(resp.Header.ContentType())
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	image := &entity.PreviewImage{URL: url, ContentType: contentType, Data: data}
	if f.cache != nil {
		f.cache.Set(url, image)
	}

	f.log.WithField("url", url).WithField("bytes", len(data)).Debug("Preview image downloaded")
	return image, nil
}

// Close releases idle connections and stops the cache
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
	if f.cache != nil {
		f.cache.Close()
	}
}

// absoluteURL turns protocol-relative image links into https ones
func absoluteURL(url string) string {
	url = strings.TrimSpace(url)
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

// Disabled is an ImageFetcher that never downloads
type Disabled struct{}

// Fetch always fails with ErrDisabled
func (Disabled) Fetch(context.Context, string) (*entity.PreviewImage, error) {
	return nil, ErrDisabled
}
