package search

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jcarlier/veillepme/internal/config"
)

// Searcher issues queries against an external search engine
type Searcher interface {
	Search(ctx context.Context, query string) ([]RawResult, error)
}

// GoogleClient queries the Google Custom Search JSON API
type GoogleClient struct {
	svc      *customsearch.Service
	engineID string
	num      int64
	langue   string
}

// NewGoogleClient builds a Custom Search client from configuration.
// Fails when no API key or engine id is available.
func NewGoogleClient(ctx context.Context, cfg *config.Config) (*GoogleClient, error) {
	key := cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("no search API key configured (set recherche.cle_api or GOOGLE_API_KEY)")
	}
	if cfg.Recherche.EngineID == "" {
		return nil, fmt.Errorf("no search engine id configured (set recherche.cx)")
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &GoogleClient{
		svc:      svc,
		engineID: cfg.Recherche.EngineID,
		num:      int64(cfg.Recherche.MaxResultats),
		langue:   cfg.Recherche.Langue,
	}, nil
}

// Search runs one query and converts the hits to RawResults
func (c *GoogleClient) Search(ctx context.Context, query string) ([]RawResult, error) {
	call := c.svc.Cse.List().Context(ctx).Q(query).Cx(c.engineID).Num(c.num)
	if c.langue != "" {
		call = call.Lr(c.langue)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search failed for %q: %w", query, err)
	}

	now := time.Now()
	results := make([]RawResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, RawResult{
			Title:       item.Title,
			Snippet:     item.Snippet,
			URL:         item.Link,
			RetrievedAt: now,
		})
	}
	return results, nil
}
