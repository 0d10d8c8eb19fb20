package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Search matches templates by title or tag. Plain substring hits come first
// in catalog order, followed by fuzzy hits ranked by score.
func (c *Catalog) Search(query string) []Template {
	return search(c.templates, query)
}

// Filter narrows to cat (when non-empty) and then applies Search.
func (c *Catalog) Filter(cat Category, query string) []Template {
	list := c.templates
	if cat != "" {
		list = c.ByCategory(cat)
	}
	return search(list, query)
}

func search(list []Template, query string) []Template {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]Template, len(list))
		copy(out, list)
		return out
	}

	var results []Template
	seen := make(map[int]bool)
	for i, t := range list {
		if substringMatch(t, query) {
			results = append(results, t)
			seen[i] = true
		}
	}

	searchStrings := make([]string, len(list))
	for i, t := range list {
		searchStrings[i] = strings.ToLower(t.Title + " " + strings.Join(t.Tags, " "))
	}
	for _, match := range fuzzy.Find(query, searchStrings) {
		if seen[match.Index] {
			continue
		}
		seen[match.Index] = true
		results = append(results, list[match.Index])
	}

	return results
}

func substringMatch(t Template, lower string) bool {
	if strings.Contains(strings.ToLower(t.Title), lower) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(tag, lower) {
			return true
		}
	}
	return false
}
