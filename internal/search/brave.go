// Package search wraps the Brave web search API and normalizes its results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ObiAU/prospectpulse/internal/apperrors"
	"github.com/ObiAU/prospectpulse/internal/models"
)

const defaultBaseURL = "https://api.search.brave.com/res/v1/web/search"

// Fixed search policy: recent English/US results, capped at 10 hits.
// Deliberately not caller-configurable.
const (
	maxResults = 10
	freshness  = "pw" // past week
	country    = "us"
	searchLang = "en"
)

// Defaults substituted when the upstream omits a field.
const (
	defaultTitle       = "No title"
	defaultDescription = "No description"
	defaultPublished   = "Recent"
)

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			Age         string `json:"age"`
			PageAge     string `json:"page_age"`
			MetaURL     struct {
				Favicon string `json:"favicon"`
			} `json:"meta_url"`
		} `json:"results"`
	} `json:"web"`
}

// Search runs a web search scoped to the fixed freshness window and returns
// up to maxResults normalized hits.
func (c *Client) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	if query == "" {
		return nil, apperrors.NewValidation("query", "must not be empty")
	}
	if c.apiKey == "" {
		return nil, apperrors.NewConfiguration("search API key")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprint(maxResults))
	params.Set("country", country)
	params.Set("search_lang", searchLang)
	params.Set("freshness", freshness)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstream("brave search", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.UpstreamError{Provider: "brave search", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.UpstreamError{
			Provider:   "brave search",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var braveResp braveResponse
	if err := json.Unmarshal(body, &braveResp); err != nil {
		return nil, &apperrors.UpstreamError{Provider: "brave search", Err: err}
	}

	results := make([]models.SearchResult, 0, len(braveResp.Web.Results))
	for i, hit := range braveResp.Web.Results {
		if i >= maxResults {
			break
		}
		results = append(results, models.SearchResult{
			Title:       orDefault(hit.Title, defaultTitle),
			URL:         hit.URL,
			Description: orDefault(hit.Description, defaultDescription),
			Published:   published(hit.Age, hit.PageAge),
			Favicon:     hit.MetaURL.Favicon,
		})
	}

	return &models.SearchResponse{
		Query:   query,
		Results: results,
		Total:   len(results),
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// published prefers the human-readable age label over the raw page date.
func published(age, pageAge string) string {
	if age != "" {
		return age
	}
	if pageAge != "" {
		return pageAge
	}
	return defaultPublished
}
