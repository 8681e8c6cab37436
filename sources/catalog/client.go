package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"toolscout/sources/configuration"
	"toolscout/sources/platform"
	"toolscout/sources/tracing"
)

var (
	ErrCatalogUnavailable = errors.New("catalog endpoint unavailable")
	ErrCatalogStatus      = errors.New("catalog returned non-success status")
	ErrCatalogPayload     = errors.New("catalog payload is malformed")
)

type Client struct {
	http   *http.Client
	config *configuration.Config
}

func NewClient(http *http.Client, config *configuration.Config) *Client {
	return &Client{http: http, config: config}
}

// Fetch retrieves the full model collection from the catalog endpoint. The raw
// response body is returned alongside the decoded form so it can be persisted
// verbatim before any transformation happens. Any failure after the retry
// budget is exhausted is fatal to the run: a partially fetched snapshot is not
// trustworthy.
func (x *Client) Fetch(log *tracing.Logger) ([]byte, *ModelsResponse, error) {
	defer tracing.ProfilePoint(log, "Catalog fetch completed", "catalog.fetch", tracing.CatalogUrl, x.config.Catalog.Endpoint)()

	var (
		raw    []byte
		models *ModelsResponse
		err    error
	)

	for attempt := 0; attempt < x.config.Catalog.MaxRetries; attempt++ {
		raw, models, err = x.fetchOnce(log)
		if err == nil {
			break
		}

		log.E("Failed to fetch catalog", tracing.CatalogAttempt, attempt+1, tracing.InnerError, err)

		if attempt < x.config.Catalog.MaxRetries-1 {
			delay := x.config.Catalog.BackoffDelay * time.Duration(1<<attempt)
			log.W("Retrying catalog fetch", tracing.CatalogAttempt, attempt+1, tracing.CatalogBackoff, delay)
			time.Sleep(delay)
		}
	}

	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	log.I("Catalog fetched", tracing.CatalogUrl, x.config.Catalog.Endpoint, tracing.RecordsFetched, len(models.Data))
	return raw, models, nil
}

func (x *Client) fetchOnce(log *tracing.Logger) ([]byte, *ModelsResponse, error) {
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), x.config.Catalog.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, x.config.Catalog.Endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if x.config.Catalog.Token != "" {
		req.Header.Set("Authorization", "Bearer "+x.config.Catalog.Token)
	}

	resp, err := x.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("%w: %s", ErrCatalogStatus, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	models := &ModelsResponse{}
	if err := json.Unmarshal(raw, models); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCatalogPayload, err)
	}

	log.D("Catalog page decoded", tracing.CatalogStatus, resp.Status, tracing.RecordsFetched, len(models.Data))
	return raw, models, nil
}

// FilterToolCapable keeps only models advertising tool calling. The normalizer
// re-checks the same property on every record it accepts.
func FilterToolCapable(models []Model) []Model {
	capable := make([]Model, 0, len(models))
	for _, model := range models {
		if model.SupportsTools() {
			capable = append(capable, model)
		}
	}
	return capable
}
