package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultWebSearchURL is the DuckDuckGo instant-answer endpoint.
const DefaultWebSearchURL = "https://api.duckduckgo.com/"

// DefaultMaxResults is the default cap on web results per search.
const DefaultMaxResults = 10

// DuckDuckGoSearch queries the DuckDuckGo instant-answer API.
type DuckDuckGoSearch struct {
	client     *http.Client
	baseURL    string
	maxResults int
}

// DuckDuckGoOption configures a DuckDuckGoSearch.
type DuckDuckGoOption func(*DuckDuckGoSearch)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGoSearch) {
		d.client = client
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) DuckDuckGoOption {
	return func(d *DuckDuckGoSearch) {
		d.baseURL = baseURL
	}
}

// WithMaxResults caps the number of results returned.
func WithMaxResults(n int) DuckDuckGoOption {
	return func(d *DuckDuckGoSearch) {
		d.maxResults = n
	}
}

// NewDuckDuckGoSearch creates a new DuckDuckGoSearch.
func NewDuckDuckGoSearch(opts ...DuckDuckGoOption) *DuckDuckGoSearch {
	d := &DuckDuckGoSearch{
		client:     &http.Client{Timeout: 15 * time.Second},
		baseURL:    DefaultWebSearchURL,
		maxResults: DefaultMaxResults,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// ddgResponse is the subset of the instant-answer payload we consume.
type ddgResponse struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
		Topics   []struct {
			Text     string `json:"Text"`
			FirstURL string `json:"FirstURL"`
		} `json:"Topics"`
	} `json:"RelatedTopics"`
}

// Search runs the query and returns up to maxResults hits.
// Returns ErrNotFound when the API yields nothing usable.
func (d *DuckDuckGoSearch) Search(ctx context.Context, query string) ([]SearchResult, error) {
	endpoint := fmt.Sprintf("%s?q=%s&format=json&no_html=1&skip_disambig=1",
		d.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build web search request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search returned status %d", resp.StatusCode)
	}

	var payload ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode web search response: %w", err)
	}

	var results []SearchResult
	if payload.AbstractText != "" {
		results = append(results, SearchResult{
			Title:   payload.Heading,
			URL:     payload.AbstractURL,
			Snippet: payload.AbstractText,
		})
	}

	for _, topic := range payload.RelatedTopics {
		if topic.Text != "" {
			results = append(results, SearchResult{
				Title:   topicTitle(topic.Text),
				URL:     topic.FirstURL,
				Snippet: topic.Text,
			})
		}
		for _, sub := range topic.Topics {
			if sub.Text != "" {
				results = append(results, SearchResult{
					Title:   topicTitle(sub.Text),
					URL:     sub.FirstURL,
					Snippet: sub.Text,
				})
			}
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no web results for query: %w", ErrNotFound)
	}
	if len(results) > d.maxResults {
		results = results[:d.maxResults]
	}
	return results, nil
}

// topicTitle derives a short title from a related-topic text, which is
// formatted as "Title - description".
func topicTitle(text string) string {
	if i := strings.Index(text, " - "); i > 0 {
		return text[:i]
	}
	return text
}

// FormatResults renders web results as a single context fragment.
func FormatResults(results []SearchResult) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "Title: %s\nURL: %s\nSnippet: %s\n\n", r.Title, r.URL, r.Snippet)
	}
	return strings.TrimSpace(b.String())
}

// Ensure DuckDuckGoSearch implements WebSearcher.
var _ WebSearcher = (*DuckDuckGoSearch)(nil)
