package search

import (
	"context"
	"time"

	"github.com/aipulse/ainews/internal/article"
)

// RawSearchProvider is the common contract for all search sources. A
// provider returns whatever it found for one keyword within the timeframe;
// it does not filter or score.
type RawSearchProvider interface {
	Name() string
	Search(ctx context.Context, keyword, timeframe string) ([]article.RawHit, error)
}

// Timeframe codes: "d" past day, "w" past week, "m" past month.

// WidenTimeframe returns the next broader window, used for the retry when a
// narrow search comes back empty. "m" is already the widest.
func WidenTimeframe(tf string) string {
	switch tf {
	case "d":
		return "w"
	case "w":
		return "m"
	default:
		return tf
	}
}

// TimeframeCutoff converts a timeframe code into the oldest acceptable
// publication time.
func TimeframeCutoff(tf string, now time.Time) time.Time {
	switch tf {
	case "d":
		return now.Add(-24 * time.Hour)
	case "w":
		return now.Add(-7 * 24 * time.Hour)
	default:
		return now.Add(-30 * 24 * time.Hour)
	}
}
