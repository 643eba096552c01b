package article

import (
	"regexp"
	"strings"
)

// Keyword lists driving the news-worthiness gate and the relevance score.
// Phrases match as substrings, short tokens match whole words only (so "ai"
// does not hit "said").

// High-value domain phrases, +0.3 each.
var highValueTerms = []string{
	"artificial intelligence",
	"machine learning",
	"neural network",
	"deep learning",
	"large language model",
	"generative ai",
	"gpt",
	"chatgpt",
	"gemini",
	"claude",
	"llm",
}

// Medium-value domain terms, +0.2 each.
var mediumValueTerms = []string{
	"algorithm",
	"automation",
	"chatbot",
	"robotics",
	"computer vision",
	"data science",
	"openai",
	"deepmind",
	"anthropic",
	"nvidia",
	"transformer",
}

// News-action verbs, +0.1 each; at least one is required for an item to be
// considered news at all.
var newsActionTerms = []string{
	"announced",
	"announces",
	"launched",
	"launches",
	"released",
	"releases",
	"unveiled",
	"unveils",
	"introduces",
	"breakthrough",
	"funding",
	"raised",
	"acquisition",
	"partnership",
	"research",
	"study",
	"develops",
}

var shortTokenRe = map[string]*regexp.Regexp{}

func init() {
	for _, lists := range [][]string{highValueTerms, mediumValueTerms, newsActionTerms} {
		for _, k := range lists {
			if len(k) <= 3 && !strings.Contains(k, " ") {
				shortTokenRe[k] = regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
			}
		}
	}
}

// containsTerm matches a single keyword against lowercased text,
// word-boundary aware for short tokens.
func containsTerm(text, k string) bool {
	k = strings.ToLower(strings.TrimSpace(k))
	if k == "" {
		return false
	}

	if strings.Contains(k, " ") {
		return strings.Contains(text, k)
	}
	if len(k) <= 3 {
		re, ok := shortTokenRe[k]
		if !ok {
			re = regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
		}
		return re.MatchString(text)
	}
	return strings.Contains(text, k)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if containsTerm(text, k) {
			return true
		}
	}
	return false
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if containsTerm(text, k) {
			n++
		}
	}
	return n
}
