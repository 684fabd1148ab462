// Package template fetches template documents from http(s) URLs or local
// files.
package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/queue-backend/internal/config"
	"github.com/heartmarshall/queue-backend/internal/domain"
)

const defaultRetryDelay = 500 * time.Millisecond

// Provider loads and parses template documents.
type Provider struct {
	httpClient *http.Client
	maxBytes   int64
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider using the fetch limits of cfg.
func NewProvider(cfg config.TemplatesConfig, logger *slog.Logger) *Provider {
	return &Provider{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		maxBytes:   cfg.MaxBytes,
		retryDelay: defaultRetryDelay,
		log:        logger.With("adapter", "template"),
	}
}

// Fetch loads the template at location. Locations are http(s) URLs,
// file:// URLs or plain paths.
func (p *Provider) Fetch(ctx context.Context, location string) (domain.Document, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		data, err = p.fetchHTTP(ctx, location)
	case strings.HasPrefix(location, "file://"):
		u, perr := url.Parse(location)
		if perr != nil {
			return domain.Document{}, fmt.Errorf("template: parse location: %w", perr)
		}
		data, err = p.readFile(u.Path)
	default:
		data, err = p.readFile(location)
	}
	if err != nil {
		return domain.Document{}, err
	}

	doc, err := domain.ParseDocument(data)
	if err != nil {
		return domain.Document{}, fmt.Errorf("template: %w", err)
	}

	p.log.DebugContext(ctx, "template loaded",
		slog.String("location", location),
		slog.Int("bytes", len(data)),
		slog.Int("pages", len(doc.Pages)),
	)
	return doc, nil
}

func (p *Provider) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("template: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		p.log.ErrorContext(ctx, "template request failed", slog.String("location", location), slog.String("error", err.Error()))
		return nil, fmt.Errorf("template: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.NewNotFoundError("template", location)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("template: unexpected status %d", resp.StatusCode)
	}
	return p.readLimited(resp.Body)
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "template retry", slog.String("location", req.URL.String()), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.httpClient.Do(req)
}

func (p *Provider) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NewNotFoundError("template", path)
		}
		return nil, fmt.Errorf("template: open %s: %w", path, err)
	}
	defer f.Close()
	return p.readLimited(f)
}

// readLimited reads r, failing once more than maxBytes arrive.
func (p *Provider) readLimited(r io.Reader) ([]byte, error) {
	if p.maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("template: read body: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("template: read body: %w", err)
	}
	if int64(len(data)) > p.maxBytes {
		return nil, domain.NewValidationError("template", fmt.Sprintf("larger than %d bytes", p.maxBytes))
	}
	return data, nil
}
