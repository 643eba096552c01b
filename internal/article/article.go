package article

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Article is one discovered news item in its normalized form.
type Article struct {
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Summary        string     `json:"summary"`
	Source         string     `json:"source"`
	PublishedDate  time.Time  `json:"publishedDate"`
	RelevanceScore float64    `json:"relevanceScore"`
	KeyPoints      []KeyPoint `json:"keyPoints,omitempty"`
}

// KeyPoint is one sentence pulled out of a summary, weighted by how much
// signal it carries. Populated lazily during post generation.
type KeyPoint struct {
	Text       string  `json:"text"`
	Importance float64 `json:"importance"`
}

// RawHit is what a search provider returns before normalization. Snippet may
// still contain markup; providers are expected to strip it, but the
// normalizer tolerates leftovers.
type RawHit struct {
	Title       string
	Snippet     string
	URL         string
	SourceName  string
	PublishedAt time.Time
	Provider    string
}

const maxTitleLen = 100

// TitleFor picks the display title: the provider heading when it carries
// signal, otherwise the first sentence of the summary, capped at 100 chars.
func TitleFor(heading, summary string) string {
	heading = strings.TrimSpace(heading)
	if len(heading) > 10 {
		return truncate(heading, maxTitleLen)
	}

	summary = strings.TrimSpace(summary)
	if idx := strings.Index(summary, ". "); idx > 0 {
		return truncate(summary[:idx+1], maxTitleLen)
	}
	return truncate(summary, maxTitleLen)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary so multi-byte text is never cut mid-rune.
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// ExtractDomain reduces a URL to its bare domain (no scheme, no www).
func ExtractDomain(url string) string {
	if url == "" {
		return "unknown"
	}

	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "https://")

	parts := strings.Split(url, "/")
	if len(parts) == 0 || parts[0] == "" {
		return "unknown"
	}

	domain := strings.TrimPrefix(parts[0], "www.")
	return strings.ToLower(domain)
}

// ExtractKeyPoints splits a summary into sentences and weighs each by the
// domain signal it carries. At most max points are returned, original order.
func ExtractKeyPoints(summary string, max int) []KeyPoint {
	sentences := strings.Split(summary, ". ")
	points := make([]KeyPoint, 0, max)

	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if len(s) < 25 {
			continue
		}
		if !strings.HasSuffix(s, ".") {
			s += "."
		}

		importance := 0.4
		lower := strings.ToLower(s)
		for _, kw := range highValueTerms {
			if strings.Contains(lower, kw) {
				importance += 0.3
				break
			}
		}
		for _, kw := range newsActionTerms {
			if strings.Contains(lower, kw) {
				importance += 0.2
				break
			}
		}
		if importance > 1 {
			importance = 1
		}

		points = append(points, KeyPoint{Text: s, Importance: importance})
		if len(points) >= max {
			break
		}
	}

	return points
}
