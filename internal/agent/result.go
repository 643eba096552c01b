package agent

import (
	"github.com/aipulse/ainews/internal/analyze"
	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/post"
)

// RunSummary is the compact rollup attached to a successful run.
type RunSummary struct {
	ArticleCount int      `json:"articleCount"`
	PostCount    int      `json:"postCount"`
	Sources      []string `json:"sources"`
	Styles       []string `json:"styles"`
}

// Result is what every run returns, success or not. Errors never escape the
// orchestrator as Go errors; they land in Error with Success=false.
type Result struct {
	Success   bool              `json:"success"`
	Partial   bool              `json:"partial,omitempty"`
	Articles  []article.Article `json:"articles,omitempty"`
	Posts     []post.Post       `json:"posts,omitempty"`
	Analysis  *analyze.Analysis `json:"analysis,omitempty"`
	Summary   *RunSummary       `json:"summary,omitempty"`
	Error     string            `json:"error,omitempty"`
	RuntimeMs int64             `json:"runtimeMs"`
}

// RegenResult is the shape of the regeneration-only operation.
type RegenResult struct {
	Success      bool   `json:"success"`
	LinkedInPost string `json:"linkedinPost,omitempty"`
	Error        string `json:"error,omitempty"`
}

func summarize(articles []article.Article, posts []post.Post) *RunSummary {
	sourceSet := map[string]struct{}{}
	var sources []string
	for _, a := range articles {
		if _, dup := sourceSet[a.Source]; !dup {
			sourceSet[a.Source] = struct{}{}
			sources = append(sources, a.Source)
		}
	}

	styleSet := map[string]struct{}{}
	var styles []string
	for _, p := range posts {
		s := string(p.Style)
		if _, dup := styleSet[s]; !dup {
			styleSet[s] = struct{}{}
			styles = append(styles, s)
		}
	}

	return &RunSummary{
		ArticleCount: len(articles),
		PostCount:    len(posts),
		Sources:      sources,
		Styles:       styles,
	}
}
