package catalog

import "time"

const (
	// TrendingWindow is the rotation period in days of the daily picks.
	TrendingWindow = 5
	// TrendingLimit caps how many picks are shown.
	TrendingLimit = 4
)

// SelectDaily picks the templates featured on ref's calendar day. Index i is
// kept when (i + dayOfYear) is a multiple of windowSize, with Jan 1 as day 1.
// The result follows catalog order and holds at most limit entries.
func SelectDaily(templates []Template, ref time.Time, windowSize, limit int) []Template {
	if windowSize <= 0 || limit <= 0 {
		return nil
	}

	day := ref.YearDay()
	var picks []Template
	for i, t := range templates {
		if (i+day)%windowSize != 0 {
			continue
		}
		picks = append(picks, t)
		if len(picks) == limit {
			break
		}
	}
	return picks
}

// Trending applies SelectDaily to the whole catalog with the default window.
func (c *Catalog) Trending(ref time.Time) []Template {
	return SelectDaily(c.templates, ref, TrendingWindow, TrendingLimit)
}
