package analyze

// RankedArticle is one entry in an analysis, rank 1..N. OriginalIndex points
// back into the article slice the analysis was computed from; it is a
// positional reference, not ownership.
type RankedArticle struct {
	Rank          int      `json:"rank"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	WhyNotable    string   `json:"whyNotable"`
	KeyPoints     []string `json:"keyPoints"`
	OriginalIndex int      `json:"originalIndex"`
}

// Analysis is the ranked subset of a search batch plus a one-paragraph
// trend description. Both the backend and the local strategy produce exactly
// this shape.
type Analysis struct {
	TopArticles  []RankedArticle `json:"topArticles"`
	OverallTrend string          `json:"overallTrend"`
}
