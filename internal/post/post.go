package post

// Style selects the template family for one post.
type Style string

const (
	StyleNewsShare Style = "news_share"
	StyleQuestion  Style = "question"
	StyleInsight   Style = "insight"
	StyleList      Style = "list"
)

// StyleRotation is the round-robin order used when generating one post per
// top-ranked article.
var StyleRotation = []Style{StyleNewsShare, StyleQuestion, StyleInsight, StyleList}

// Post is one ready-to-copy text blob. Never persisted; built fresh per run
// or regeneration request.
type Post struct {
	Content        string   `json:"content"`
	Hashtags       []string `json:"hashtags"`
	SourceURL      string   `json:"sourceUrl"`
	Style          Style    `json:"style"`
	CharacterCount int      `json:"characterCount"`
}
