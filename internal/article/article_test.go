package article

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTitleForPrefersHeading(t *testing.T) {
	got := TitleFor("OpenAI announces new model", "Something else entirely. More text.")
	if got != "OpenAI announces new model" {
		t.Errorf("expected heading to win, got %q", got)
	}
}

func TestTitleForDerivesFromSummary(t *testing.T) {
	got := TitleFor("", "The first sentence becomes the title. The second one does not.")
	if got != "The first sentence becomes the title." {
		t.Errorf("unexpected derived title: %q", got)
	}

	// Trivial headings are ignored too.
	got = TitleFor("News", "A usable first sentence here instead. Rest ignored.")
	if got != "A usable first sentence here instead." {
		t.Errorf("trivial heading should fall back to summary, got %q", got)
	}
}

func TestTitleForTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := TitleFor(long, "")
	if len(got) > 100 {
		t.Errorf("title length %d exceeds 100", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated title should end with ellipsis: %q", got)
	}
}

func TestTitleForMultiByteTruncation(t *testing.T) {
	got := TitleFor(strings.Repeat("é", 120), "")
	if !utf8.ValidString(got) {
		t.Errorf("truncated title is not valid UTF-8: %q", got)
	}
	if len(got) > 100 {
		t.Errorf("title length %d exceeds 100", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated title should end with ellipsis: %q", got)
	}
}

func TestExtractDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.techcrunch.com/2026/01/story": "techcrunch.com",
		"http://example.com/path":                  "example.com",
		"https://Sub.Example.COM/x":                "sub.example.com",
		"":                                         "unknown",
	}
	for in, want := range cases {
		if got := ExtractDomain(in); got != want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractKeyPoints(t *testing.T) {
	summary := "The lab announced a breakthrough in machine learning. " +
		"The new system outperforms previous approaches on standard benchmarks. " +
		"Short bit. " +
		"Funding for the project came from several strategic partners this year. " +
		"A fifth long sentence that should be cut by the limit on point count."

	points := ExtractKeyPoints(summary, 3)
	if len(points) != 3 {
		t.Fatalf("expected 3 key points, got %d", len(points))
	}
	for _, p := range points {
		if p.Importance < 0 || p.Importance > 1 {
			t.Errorf("importance %v out of range for %q", p.Importance, p.Text)
		}
		if !strings.HasSuffix(p.Text, ".") {
			t.Errorf("key point should end with a period: %q", p.Text)
		}
	}
	// First sentence carries domain + action terms, so it should outweigh
	// the plain one.
	if points[0].Importance <= points[1].Importance {
		t.Errorf("expected first point (%v) to outrank second (%v)",
			points[0].Importance, points[1].Importance)
	}
}

func TestContainsTermShortTokenWholeWord(t *testing.T) {
	if containsTerm("the ceo said hello", "ai") {
		t.Error("'ai' must not match inside 'said'")
	}
	if !containsTerm("the ai said hello", "ai") {
		t.Error("'ai' should match as a whole word")
	}
}
