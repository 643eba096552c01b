// Package scraper enriches short provider snippets with the real article
// body before analysis. Best effort: a page that cannot be fetched or parsed
// just keeps its snippet.
package scraper

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ArticleContent is the extracted body of one page.
type ArticleContent struct {
	Title   string
	Content string
	URL     string
}

// Scraper fetches article pages with bounded concurrency.
type Scraper struct {
	client      *http.Client
	concurrency int
}

func New(timeout time.Duration, concurrency int) *Scraper {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Scraper{
		client:      &http.Client{Timeout: timeout},
		concurrency: concurrency,
	}
}

// Selector cascade tried in order; most news sites hit one of the first
// three.
var contentSelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".post-content p",
	".entry-content p",
	"main p",
	".content p",
}

// ExtractArticle fetches one URL and pulls out the main text.
func (s *Scraper) ExtractArticle(url string) (*ArticleContent, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	content := extractContent(doc)
	if content == "" {
		return nil, fmt.Errorf("no extractable content")
	}

	return &ArticleContent{
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		Content: content,
		URL:     url,
	}, nil
}

// ExtractArticles fetches a batch of URLs in parallel and returns whatever
// succeeded, keyed by URL.
func (s *Scraper) ExtractArticles(urls []string) map[string]*ArticleContent {
	results := make(map[string]*ArticleContent, len(urls))
	var mu sync.Mutex
	var wg sync.WaitGroup

	sem := make(chan struct{}, s.concurrency)
	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			content, err := s.ExtractArticle(url)
			if err != nil {
				log.Printf("Scrape failed for %s: %v", url, err)
				return
			}
			mu.Lock()
			results[url] = content
			mu.Unlock()
		}(url)
	}
	wg.Wait()

	return results
}

func extractContent(doc *goquery.Document) string {
	var paragraphs []string

	for _, selector := range contentSelectors {
		doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if len(text) > 40 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 2 {
			break
		}
		paragraphs = paragraphs[:0]
	}

	return cleanContent(strings.Join(paragraphs, "\n\n"))
}

func cleanContent(content string) string {
	content = strings.ReplaceAll(content, "\n\n\n", "\n\n")
	content = strings.TrimSpace(content)

	// Cap what gets handed to the AI prompt later.
	if len(content) > 6000 {
		cut := content[:6000]
		if idx := strings.LastIndex(cut, ". "); idx > 1200 {
			cut = cut[:idx+1]
		}
		content = cut
	}
	return content
}
