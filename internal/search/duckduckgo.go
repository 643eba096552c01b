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

// DuckDuckGoProvider is the generic provider: a loosely structured instant
// answer payload (abstract, flat related topics, nested topic groups) that
// all gets walked and flattened into RawHits. No API key, no real dates.
type DuckDuckGoProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewDuckDuckGoProvider(timeout time.Duration) *DuckDuckGoProvider {
	return &DuckDuckGoProvider{
		BaseURL: "https://api.duckduckgo.com/",
		Client:  &http.Client{Timeout: timeout},
	}
}

func (p *DuckDuckGoProvider) Name() string { return "duckduckgo" }

// ddgTopic covers both shapes inside RelatedTopics: a plain topic
// (FirstURL/Text) and a named group carrying nested Topics.
type ddgTopic struct {
	FirstURL string     `json:"FirstURL"`
	Text     string     `json:"Text"`
	Result   string     `json:"Result"`
	Name     string     `json:"Name"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	Heading       string     `json:"Heading"`
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

func (p *DuckDuckGoProvider) Search(ctx context.Context, keyword, timeframe string) ([]article.RawHit, error) {
	params := url.Values{}
	params.Set("q", keyword+" news")
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: build request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo: status %d", resp.StatusCode)
	}

	var body ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("duckduckgo: decode response: %w", err)
	}

	var hits []article.RawHit

	// Direct-answer abstract first.
	if body.AbstractText != "" && body.AbstractURL != "" {
		hits = append(hits, article.RawHit{
			Title:    htmltext.Strip(body.Heading),
			Snippet:  htmltext.Strip(body.AbstractText),
			URL:      body.AbstractURL,
			Provider: p.Name(),
		})
	}

	// Then the related-topics tree, one level of nesting.
	for _, t := range body.RelatedTopics {
		hits = append(hits, p.flattenTopic(t)...)
	}

	return hits, nil
}

func (p *DuckDuckGoProvider) flattenTopic(t ddgTopic) []article.RawHit {
	if len(t.Topics) > 0 {
		var hits []article.RawHit
		for _, sub := range t.Topics {
			hits = append(hits, p.flattenTopic(sub)...)
		}
		return hits
	}

	if t.FirstURL == "" || t.Text == "" {
		return nil
	}
	return []article.RawHit{{
		Snippet:  htmltext.Strip(t.Text),
		URL:      t.FirstURL,
		Provider: p.Name(),
	}}
}
