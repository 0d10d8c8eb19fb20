package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltins(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 11, c.Len())

	cheque, ok := c.Get("bank-001")
	require.True(t, ok)
	assert.Equal(t, "Request for New Cheque Book", cheque.Title)
	assert.Equal(t, Banking, cheque.Category)
	assert.Contains(t, cheque.EnglishBody, "[Account Number]")
	assert.Contains(t, cheque.HindiBody, "[Account Number]")
	assert.Len(t, cheque.FAQs, 2)

	for _, tmpl := range c.All() {
		assert.NotEmpty(t, tmpl.EnglishBody, tmpl.ID)
		assert.NotEmpty(t, tmpl.HindiBody, tmpl.ID)
		for _, tag := range tmpl.Tags {
			assert.Equal(t, strings.ToLower(tag), tag, tmpl.ID)
		}
	}
}

func TestNewRejectsBadTemplates(t *testing.T) {
	_, err := New(
		Template{ID: "a", Title: "A", Category: Banking},
		Template{ID: "a", Title: "B", Category: Banking},
	)
	assert.ErrorContains(t, err, "duplicate")

	_, err = New(Template{ID: "x", Title: "X", Category: "Taxes"})
	assert.ErrorContains(t, err, "unknown category")
}

func TestNewNormalisesTags(t *testing.T) {
	c, err := New(Template{ID: "a", Title: "A", Category: "banking", Tags: []string{" ATM ", ""}})
	require.NoError(t, err)

	got, _ := c.Get("a")
	assert.Equal(t, Banking, got.Category)
	assert.Equal(t, []string{"atm"}, got.Tags)
}

func TestByCategory(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	police := c.ByCategory(Police)
	require.Len(t, police, 2)
	assert.Equal(t, "police-001", police[0].ID)
	assert.Equal(t, "police-002", police[1].ID)

	assert.Empty(t, c.ByCategory(General))
}

func TestSearch(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name      string
		query     string
		wantFirst string
	}{
		{name: "title substring", query: "cheque", wantFirst: "bank-001"},
		{name: "tag match", query: "bijli", wantFirst: "util-001"},
		{name: "case insensitive", query: "RESIGNATION", wantFirst: "job-001"},
		{name: "tag with space", query: "debit card", wantFirst: "bank-002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.wantFirst, got[0].ID)
		})
	}

	assert.Equal(t, c.Len(), len(c.Search("  ")), "blank query returns everything")
	assert.Empty(t, c.Search("zzzzqqqq"))
}

func TestFilterWithinCategory(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	got := c.Filter(School, "leave")
	require.NotEmpty(t, got)
	for _, tmpl := range got {
		assert.Equal(t, School, tmpl.Category)
	}
	assert.Equal(t, "school-001", got[0].ID)
}

func numbered(n int) []Template {
	out := make([]Template, n)
	for i := range out {
		out[i] = Template{ID: fmt.Sprintf("t%02d", i), Title: fmt.Sprintf("T%d", i), Category: General}
	}
	return out
}

func ids(ts []Template) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestSelectDaily(t *testing.T) {
	jan1 := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	jan5 := time.Date(2025, time.January, 5, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name   string
		n      int
		ref    time.Time
		window int
		limit  int
		want   []string
	}{
		{name: "day one picks index four onward", n: 20, ref: jan1, window: 5, limit: 4, want: []string{"t04", "t09", "t14", "t19"}},
		{name: "limit truncates", n: 20, ref: jan1, window: 5, limit: 2, want: []string{"t04", "t09"}},
		{name: "day five starts at zero", n: 11, ref: jan5, window: 5, limit: 4, want: []string{"t00", "t05", "t10"}},
		{name: "empty catalog", n: 0, ref: jan1, window: 5, limit: 4, want: nil},
		{name: "zero window", n: 10, ref: jan1, window: 0, limit: 4, want: nil},
		{name: "zero limit", n: 10, ref: jan1, window: 5, limit: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectDaily(numbered(tt.n), tt.ref, tt.window, tt.limit)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSelectDailyStableAndBounded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	for d := 0; d < 366; d++ {
		day := start.AddDate(0, 0, d)
		first := c.Trending(day)
		second := c.Trending(day)
		assert.Equal(t, ids(first), ids(second))
		assert.LessOrEqual(t, len(first), TrendingLimit)

		seen := map[string]bool{}
		for _, tmpl := range first {
			assert.False(t, seen[tmpl.ID], "duplicate pick %s", tmpl.ID)
			seen[tmpl.ID] = true
			_, ok := c.Get(tmpl.ID)
			assert.True(t, ok)
		}
	}
}

func TestParseUserTemplate(t *testing.T) {
	bilingual := []byte(`---
id: rent-001
title: Rent Receipt Request
category: general
tags: [Rent, receipt]
---
To,
[Landlord Name]
<!-- hindi -->
सेवा में,
[Landlord Name]
`)
	tmpl, err := ParseUserTemplate(bilingual)
	require.NoError(t, err)
	assert.Equal(t, "rent-001", tmpl.ID)
	assert.Equal(t, "To,\n[Landlord Name]", tmpl.EnglishBody)
	assert.Equal(t, "सेवा में,\n[Landlord Name]", tmpl.HindiBody)

	hindiOnly := []byte("---\nid: h-1\ntitle: H\nlanguage: hindi\n---\nनमस्ते [Name]\n")
	tmpl, err = ParseUserTemplate(hindiOnly)
	require.NoError(t, err)
	assert.Empty(t, tmpl.EnglishBody)
	assert.Equal(t, "नमस्ते [Name]", tmpl.HindiBody)
	assert.Equal(t, General, tmpl.Category)

	_, err = ParseUserTemplate([]byte("no frontmatter here"))
	assert.Error(t, err)
}

func TestLoadWithUser(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("a.md", "---\nid: user-001\ntitle: Custom\ncategory: General\n---\nDear [Name]\n")
	write("dup.md", "---\nid: bank-001\ntitle: Clash\ncategory: Banking\n---\nbody\n")
	write("broken.md", "not a template")
	write("notes.txt", "ignored")

	c, err := LoadWithUser(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, c.Len())

	custom, ok := c.Get("user-001")
	require.True(t, ok)
	assert.Equal(t, "Dear [Name]", custom.EnglishBody)

	bank, _ := c.Get("bank-001")
	assert.Equal(t, "Request for New Cheque Book", bank.Title)

	c, err = LoadWithUser(filepath.Join(dir, "missing"), nil)
	require.NoError(t, err)
	assert.Equal(t, 11, c.Len())
}
