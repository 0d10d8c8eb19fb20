package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// hindiMarker separates the English and Hindi bodies of a user template.
const hindiMarker = "<!-- hindi -->"

type userFrontmatter struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Language string   `yaml:"language"`
	FAQs     []FAQ    `yaml:"faqs"`
}

// ParseUserTemplate reads a markdown template with YAML frontmatter:
//
//	---
//	id: rent-001
//	title: Rent Receipt Request
//	category: General
//	tags: [rent]
//	---
//	To,
//	[Landlord Name] ...
//	<!-- hindi -->
//	सेवा में, ...
//
// Without the marker the body goes to the slot named by language (english
// by default).
func ParseUserTemplate(content []byte) (Template, error) {
	parts := strings.SplitN(string(content), "---", 3)
	if len(parts) < 3 || strings.TrimSpace(parts[0]) != "" {
		return Template{}, errors.New("missing frontmatter")
	}

	var fm userFrontmatter
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return Template{}, fmt.Errorf("frontmatter: %w", err)
	}
	if fm.ID == "" || fm.Title == "" {
		return Template{}, errors.New("frontmatter needs id and title")
	}
	if fm.Category == "" {
		fm.Category = string(General)
	}

	t := Template{
		ID:       fm.ID,
		Title:    fm.Title,
		Category: Category(fm.Category),
		Tags:     fm.Tags,
		FAQs:     fm.FAQs,
	}

	body := strings.Trim(parts[2], "\n")
	if en, hi, ok := strings.Cut(body, hindiMarker); ok {
		t.EnglishBody = strings.TrimSpace(en)
		t.HindiBody = strings.TrimSpace(hi)
		return t, nil
	}

	lang := English
	if fm.Language != "" {
		l, err := ParseLanguage(fm.Language)
		if err != nil {
			return Template{}, err
		}
		lang = l
	}
	if lang == Hindi {
		t.HindiBody = strings.TrimSpace(body)
	} else {
		t.EnglishBody = strings.TrimSpace(body)
	}
	return t, nil
}

// LoadUserTemplates scans dir for *.md templates. A missing directory yields
// no templates; unreadable or invalid files are skipped and logged.
func LoadUserTemplates(dir string, logger *zap.Logger) ([]Template, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var templates []Template
	for _, name := range names {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable template", zap.String("path", path), zap.Error(err))
			continue
		}
		t, err := ParseUserTemplate(content)
		if err != nil {
			logger.Warn("skipping invalid template", zap.String("path", path), zap.Error(err))
			continue
		}
		templates = append(templates, t)
	}

	return templates, nil
}

// LoadWithUser returns the built-in catalog extended by templates from dir.
// User templates whose id collides with an existing one are dropped.
func LoadWithUser(dir string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	base, err := Load()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return base, nil
	}

	extra, err := LoadUserTemplates(dir, logger)
	if err != nil {
		logger.Warn("cannot read user templates", zap.String("dir", dir), zap.Error(err))
		return base, nil
	}

	c := base
	for _, t := range extra {
		next, err := c.With(t)
		if err != nil {
			logger.Warn("skipping user template", zap.String("id", t.ID), zap.Error(err))
			continue
		}
		c = next
	}
	logger.Info("catalog loaded", zap.Int("builtin", base.Len()), zap.Int("total", c.Len()))
	return c, nil
}
