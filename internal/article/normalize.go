package article

import (
	"sort"
	"strings"
	"time"

	"github.com/aipulse/ainews/internal/metrics"
)

// Normalizer turns raw provider hits into the uniform Article shape and
// applies the quality pipeline: news gate, relevance score, source lists,
// dedup, ranking, limit.
type Normalizer struct {
	Keywords         []string
	MinRelevance     float64
	MaxArticles      int
	PreferredSources []string
	ExcludedSources  []string
}

const minSummaryLen = 100

// Normalize runs the whole pipeline over one batch of hits.
func (n *Normalizer) Normalize(hits []RawHit) []Article {
	seen := map[string]struct{}{}
	var kept []Article

	for _, hit := range hits {
		metrics.Global.IncrementArticlesProcessed()

		summary := strings.TrimSpace(hit.Snippet)
		url := strings.TrimSpace(hit.URL)
		if url == "" {
			continue
		}

		// Dedup by URL, first occurrence wins.
		if _, dup := seen[url]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[url] = struct{}{}

		if len(summary) < minSummaryLen {
			continue
		}

		text := strings.ToLower(hit.Title + " " + summary)

		// News gate: needs at least one action verb and one domain term.
		if !containsAny(text, newsActionTerms) {
			continue
		}
		if !containsAny(text, highValueTerms) && !containsAny(text, mediumValueTerms) {
			continue
		}

		source := hit.SourceName
		if source == "" {
			source = ExtractDomain(url)
		} else {
			source = strings.ToLower(source)
		}
		if n.isExcluded(source) {
			continue
		}

		score := n.Score(text)
		if score < n.MinRelevance {
			continue
		}

		published := hit.PublishedAt
		if published.IsZero() {
			published = time.Now()
		}

		kept = append(kept, Article{
			Title:          TitleFor(hit.Title, summary),
			URL:            url,
			Summary:        summary,
			Source:         source,
			PublishedDate:  published,
			RelevanceScore: score,
		})
	}

	// Preferred sources float to the top, then relevance. Stable, so equal
	// articles keep provider order.
	sort.SliceStable(kept, func(i, j int) bool {
		pi, pj := n.isPreferred(kept[i].Source), n.isPreferred(kept[j].Source)
		if pi != pj {
			return pi
		}
		return kept[i].RelevanceScore > kept[j].RelevanceScore
	})

	if n.MaxArticles > 0 && len(kept) > n.MaxArticles {
		kept = kept[:n.MaxArticles]
	}
	return kept
}

// Score computes the [0,1] relevance heuristic over lowercased text.
func (n *Normalizer) Score(text string) float64 {
	score := 0.0

	for _, kw := range n.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if len(kw) <= 2 {
			continue
		}
		score += 0.15 * float64(strings.Count(text, kw))
	}

	score += 0.3 * float64(countMatches(text, highValueTerms))
	score += 0.2 * float64(countMatches(text, mediumValueTerms))
	score += 0.1 * float64(countMatches(text, newsActionTerms))

	if score > 1 {
		score = 1
	}
	return score
}

func (n *Normalizer) isPreferred(source string) bool {
	return matchesAnySource(source, n.PreferredSources)
}

func (n *Normalizer) isExcluded(source string) bool {
	return matchesAnySource(source, n.ExcludedSources)
}

func matchesAnySource(source string, list []string) bool {
	source = strings.ToLower(source)
	for _, s := range list {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && strings.Contains(source, s) {
			return true
		}
	}
	return false
}
