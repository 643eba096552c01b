package htmltext

import "testing"

func TestStrip(t *testing.T) {
	cases := map[string]string{
		"plain text stays":                      "plain text stays",
		"<b>bold</b> and <a href='#'>link</a>":  "bold and link",
		"  spaced\n\nout   text ":               "spaced out text",
		"<p>one</p><p>two</p>":                  "onetwo",
		"entity &amp; text":                     "entity & text",
	}
	for in, want := range cases {
		if got := Strip(in); got != want {
			t.Errorf("Strip(%q) = %q, want %q", in, got, want)
		}
	}
}
