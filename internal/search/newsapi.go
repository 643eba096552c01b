package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/htmltext"
)

// NewsAPIProvider is the structured provider: one request per keyword, a
// flat array of articles with explicit fields in the response.
type NewsAPIProvider struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewNewsAPIProvider(apiKey string, timeout time.Duration) *NewsAPIProvider {
	return &NewsAPIProvider{
		APIKey:  apiKey,
		BaseURL: "https://newsapi.org/v2/everything",
		Client:  &http.Client{Timeout: timeout},
	}
}

func (p *NewsAPIProvider) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (p *NewsAPIProvider) Search(ctx context.Context, keyword, timeframe string) ([]article.RawHit, error) {
	from := TimeframeCutoff(timeframe, time.Now()).Format("2006-01-02")

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("from", from)
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", "20")
	params.Set("apiKey", p.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: build request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: status %d", resp.StatusCode)
	}

	var body newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("newsapi: decode response: %w", err)
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi: api error: %s", body.Message)
	}

	hits := make([]article.RawHit, 0, len(body.Articles))
	for _, a := range body.Articles {
		snippet := a.Description
		if len(a.Content) > len(snippet) {
			snippet = a.Content
		}

		published := time.Time{}
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			published = t
		}

		hits = append(hits, article.RawHit{
			Title:       htmltext.Strip(a.Title),
			Snippet:     htmltext.Strip(snippet),
			URL:         a.URL,
			SourceName:  article.ExtractDomain(a.URL),
			PublishedAt: published,
			Provider:    p.Name(),
		})
	}
	return hits, nil
}
