package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuckDuckGoFlattensNestedPayload(t *testing.T) {
	payload := `{
		"Heading": "Artificial intelligence",
		"AbstractText": "Artificial intelligence is intelligence demonstrated by machines.",
		"AbstractURL": "https://en.wikipedia.org/wiki/Artificial_intelligence",
		"RelatedTopics": [
			{"FirstURL": "https://example.com/flat", "Text": "A flat <b>related</b> topic about AI."},
			{
				"Name": "Companies",
				"Topics": [
					{"FirstURL": "https://example.com/nested1", "Text": "Nested topic one."},
					{"FirstURL": "https://example.com/nested2", "Text": "Nested topic two."}
				]
			},
			{"FirstURL": "", "Text": "no url, dropped"}
		]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	p := NewDuckDuckGoProvider(5 * time.Second)
	p.BaseURL = srv.URL

	hits, err := p.Search(context.Background(), "artificial intelligence", "d")
	require.NoError(t, err)
	require.Len(t, hits, 4)

	assert.Equal(t, "https://en.wikipedia.org/wiki/Artificial_intelligence", hits[0].URL)
	assert.Equal(t, "Artificial intelligence", hits[0].Title)

	// Markup in text fields is stripped during flattening.
	assert.Equal(t, "A flat related topic about AI.", hits[1].Snippet)
	assert.Equal(t, "https://example.com/nested1", hits[2].URL)
	assert.Equal(t, "https://example.com/nested2", hits[3].URL)
}

func TestDuckDuckGoHTTPErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewDuckDuckGoProvider(5 * time.Second)
	p.BaseURL = srv.URL

	_, err := p.Search(context.Background(), "ai", "d")
	assert.Error(t, err)
}

func TestNewsAPIParsesArticles(t *testing.T) {
	payload := `{
		"status": "ok",
		"articles": [
			{
				"source": {"name": "TechCrunch"},
				"title": "OpenAI announces model",
				"description": "A short description.",
				"content": "A longer content field with more detail than the description has.",
				"url": "https://techcrunch.com/story",
				"publishedAt": "2026-03-09T10:00:00Z"
			}
		]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("from"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	p := NewNewsAPIProvider("test-key", 5*time.Second)
	p.BaseURL = srv.URL

	hits, err := p.Search(context.Background(), "openai", "d")
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, "OpenAI announces model", hits[0].Title)
	// The longer of description/content wins.
	assert.Contains(t, hits[0].Snippet, "longer content field")
	assert.Equal(t, "techcrunch.com", hits[0].SourceName)
	assert.Equal(t, 2026, hits[0].PublishedAt.Year())
}

func TestNewsAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"apiKeyInvalid"}`))
	}))
	defer srv.Close()

	p := NewNewsAPIProvider("bad", 5*time.Second)
	p.BaseURL = srv.URL

	_, err := p.Search(context.Background(), "ai", "d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
}
