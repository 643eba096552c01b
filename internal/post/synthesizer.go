package post

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aipulse/ainews/internal/analyze"
	"github.com/aipulse/ainews/internal/article"
	"github.com/aipulse/ainews/internal/logger"
	"github.com/aipulse/ainews/internal/metrics"
)

// Synthesizer turns an analysis into post text. Template pools are chosen
// through the injected random source so tests can pin the selection; Backend
// is optional and only ever produces the free-form body, never hashtags or
// the source line.
type Synthesizer struct {
	MaxCharacters int
	MaxHashtags   int
	// OptimalLength is the body length the backend is asked to aim for;
	// MaxCharacters remains the hard cap. Zero means no target.
	OptimalLength int
	Backend       analyze.TextBackend
	rng           *rand.Rand
}

// charBuffer is held back from the content budget so the final assembly
// (newlines between blocks) can never push past MaxCharacters.
const charBuffer = 20

func NewSynthesizer(maxCharacters, maxHashtags int, backend analyze.TextBackend, rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{
		MaxCharacters: maxCharacters,
		MaxHashtags:   maxHashtags,
		Backend:       backend,
		rng:           rng,
	}
}

var hooks = []string{
	"🚀 Big news in AI:",
	"📰 Worth your attention:",
	"⚡ Just in:",
	"🔥 This one stood out today:",
}

var questions = []string{
	"What does this mean for the rest of us?",
	"Is this the direction the industry should be taking?",
	"How soon will this reach everyday products?",
}

var insightClosers = []string{
	"The pace here says more than the announcement itself.",
	"Watch this space: capabilities like this rarely stay niche for long.",
	"The interesting part is not the tech, it is who gets access to it.",
}

var engagementPrompts = []string{
	"What's your take? 👇",
	"Share your thoughts in the comments.",
	"Curious what others in the field think about this.",
}

// SynthesizeAll produces one post per top-ranked article, style assigned
// round-robin for variety. A failure for one article is logged and skipped;
// only zero posts overall is an error.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, analysis analyze.Analysis, articles []article.Article) ([]Post, error) {
	var posts []Post
	for i, ranked := range analysis.TopArticles {
		style := StyleRotation[i%len(StyleRotation)]
		p, err := s.Synthesize(ctx, ranked, articles, style)
		if err != nil {
			logger.Warn("post synthesis failed for article, continuing",
				"title", ranked.Title, "style", string(style), "error", err)
			continue
		}
		posts = append(posts, p)
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("no posts could be generated")
	}
	metrics.Global.AddPostsGenerated(len(posts))
	return posts, nil
}

// Synthesize builds a single post for one ranked article.
func (s *Synthesizer) Synthesize(ctx context.Context, ranked analyze.RankedArticle, articles []article.Article, style Style) (Post, error) {
	if ranked.OriginalIndex < 0 || ranked.OriginalIndex >= len(articles) {
		return Post{}, fmt.Errorf("ranked article references index %d outside batch of %d", ranked.OriginalIndex, len(articles))
	}
	src := articles[ranked.OriginalIndex]

	hashtags := GenerateHashtags(src.Title+" "+src.Summary, s.MaxHashtags)
	hashtagLine := strings.Join(hashtags, " ")
	sourceLine := "🔗 Source: " + src.URL

	maxContentLength := s.MaxCharacters - len(hashtagLine) - len(sourceLine) - charBuffer
	if maxContentLength < 50 {
		return Post{}, fmt.Errorf("character budget too small for any content")
	}

	body := s.buildBody(ctx, ranked, src, style)
	if len(body) > maxContentLength {
		body = truncateAtWord(body, maxContentLength)
	}

	content := body + "\n\n" + hashtagLine + "\n\n" + sourceLine
	if len(content) > s.MaxCharacters {
		// The buffer above makes this unreachable unless templates change;
		// enforce the invariant anyway.
		content = cutAtRune(content, s.MaxCharacters)
	}

	return Post{
		Content:        content,
		Hashtags:       hashtags,
		SourceURL:      src.URL,
		Style:          style,
		CharacterCount: len(content),
	}, nil
}

// buildBody prefers the generative backend when one is wired; any backend
// failure falls back to the templates without surfacing an error.
func (s *Synthesizer) buildBody(ctx context.Context, ranked analyze.RankedArticle, src article.Article, style Style) string {
	if s.Backend != nil {
		target := ""
		if s.OptimalLength > 0 {
			target = fmt.Sprintf(" Aim for roughly %d characters.", s.OptimalLength)
		}
		prompt := fmt.Sprintf(
			"Write the body of a short professional social media post in the %q style about this AI news. Plain text only, no hashtags, no links.%s\n\nTitle: %s\nWhy it matters: %s\nSummary: %s",
			style, target, ranked.Title, ranked.WhyNotable, ranked.Summary)

		body, err := s.Backend.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(body) != "" {
			return strings.TrimSpace(body)
		}
		logger.Warn("backend post body failed, using template",
			"style", string(style), "error", err)
	}
	return s.templateBody(ranked, src, style)
}

func (s *Synthesizer) templateBody(ranked analyze.RankedArticle, src article.Article, style Style) string {
	var b strings.Builder

	switch style {
	case StyleQuestion:
		b.WriteString(s.pick(questions))
		b.WriteString("\n\n")
		b.WriteString(condense(ranked.Summary, 150))
		b.WriteString("\n\n")
		b.WriteString("Drop your perspective in the comments.")

	case StyleInsight:
		b.WriteString("💡 Key insight: ")
		b.WriteString(ranked.Title)
		b.WriteString("\n\n")
		b.WriteString(condense(ranked.Summary, 150))
		b.WriteString("\n\n")
		b.WriteString(s.pick(insightClosers))

	case StyleList:
		b.WriteString(ranked.Title)
		b.WriteString("\n\n")
		b.WriteString(condense(ranked.Summary, 100))
		b.WriteString("\n\n")
		points := ranked.KeyPoints
		if len(points) == 0 {
			for _, kp := range article.ExtractKeyPoints(src.Summary, 3) {
				points = append(points, kp.Text)
			}
		}
		if len(points) > 3 {
			points = points[:3]
		}
		for i, pt := range points {
			fmt.Fprintf(&b, "%d. %s\n", i+1, pt)
		}
		b.WriteString("\n")
		b.WriteString(s.pick(engagementPrompts))

	default: // StyleNewsShare
		b.WriteString(s.pick(hooks))
		b.WriteString(" ")
		b.WriteString(ranked.Title)
		b.WriteString("\n\n")
		b.WriteString(condense(ranked.Summary, 200))
		b.WriteString("\n\n")
		b.WriteString(s.pick(engagementPrompts))
	}

	return b.String()
}

func (s *Synthesizer) pick(pool []string) string {
	return pool[s.rng.Intn(len(pool))]
}

// condense shortens text to roughly max characters, preferring a full
// sentence boundary over a hard cut.
func condense(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}

	cut := cutAtRune(text, max)
	if idx := strings.LastIndex(cut, ". "); idx > max/2 {
		return cut[:idx+1]
	}
	return truncateAtWord(text, max)
}

// truncateAtWord cuts to at most max bytes ending in an ellipsis, breaking
// at a word boundary when one is close enough.
func truncateAtWord(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := cutAtRune(text, max-3)
	if idx := strings.LastIndex(cut, " "); idx > max/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// cutAtRune returns the longest prefix of s that fits in max bytes and ends
// on a rune boundary, so cuts never produce invalid UTF-8.
func cutAtRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
