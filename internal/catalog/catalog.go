package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var builtinTemplates []byte

// Category is one of the fixed letter categories.
type Category string

const (
	Banking Category = "Banking"
	Police  Category = "Police"
	Utility Category = "Utility"
	Job     Category = "Job"
	School  Category = "School"
	General Category = "General"
)

// Categories lists every category in display order.
var Categories = []Category{Banking, Police, Utility, Job, School, General}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Language selects which body of a template is active.
type Language string

const (
	English Language = "english"
	Hindi   Language = "hindi"
)

var (
	tagEnglishIN = language.MustParse("en-IN")
	tagHindiIN   = language.MustParse("hi-IN")
)

func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en", "en-in":
		return English, nil
	case "hindi", "hi", "hi-in":
		return Hindi, nil
	default:
		return "", fmt.Errorf("unknown language %q (want english or hindi)", s)
	}
}

// Tag returns the BCP 47 tag used by speech capture and exports.
func (l Language) Tag() language.Tag {
	if l == Hindi {
		return tagHindiIN
	}
	return tagEnglishIN
}

// Label is the name shown on the language toggle.
func (l Language) Label() string {
	if l == Hindi {
		return "हिंदी (Hindi)"
	}
	return "English"
}

// Other returns the opposite language.
func (l Language) Other() Language {
	if l == Hindi {
		return English
	}
	return Hindi
}

type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Template is a named letter pattern with one body per language.
type Template struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Category    Category `yaml:"category"`
	Tags        []string `yaml:"tags"`
	EnglishBody string   `yaml:"english"`
	HindiBody   string   `yaml:"hindi"`
	FAQs        []FAQ    `yaml:"faqs,omitempty"`
}

// GeneratedPrefix marks ids of templates that have no catalog entry, such as
// AI-written letters.
const GeneratedPrefix = "ai-"

// Generated reports whether t was synthesised rather than taken from the
// catalog.
func (t *Template) Generated() bool {
	return strings.HasPrefix(t.ID, GeneratedPrefix)
}

// Body returns the text for lang. The two bodies are independent.
func (t *Template) Body(lang Language) string {
	if lang == Hindi {
		return t.HindiBody
	}
	return t.EnglishBody
}

// HasLanguage reports whether the template carries a body for lang.
func (t *Template) HasLanguage(lang Language) bool {
	return strings.TrimSpace(t.Body(lang)) != ""
}

// Catalog is the immutable set of templates available for drafting.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// Load parses the built-in templates.
func Load() (*Catalog, error) {
	return Parse(builtinTemplates)
}

// Parse builds a catalog from YAML shaped like templates.yaml.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return New(f.Templates...)
}

// New validates templates and builds a catalog preserving their order.
func New(templates ...Template) (*Catalog, error) {
	c := &Catalog{
		templates: make([]Template, 0, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	for _, t := range templates {
		if err := c.add(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(t Template) error {
	if t.ID == "" {
		return fmt.Errorf("template %q has no id", t.Title)
	}
	if _, dup := c.byID[t.ID]; dup {
		return fmt.Errorf("duplicate template id %q", t.ID)
	}
	cat, err := ParseCategory(string(t.Category))
	if err != nil {
		return fmt.Errorf("template %s: %w", t.ID, err)
	}
	t.Category = cat

	tags := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			tags = append(tags, tag)
		}
	}
	t.Tags = tags

	c.byID[t.ID] = len(c.templates)
	c.templates = append(c.templates, t)
	return nil
}

// With returns a new catalog with extra appended after the existing templates.
func (c *Catalog) With(extra ...Template) (*Catalog, error) {
	all := make([]Template, 0, len(c.templates)+len(extra))
	all = append(all, c.templates...)
	all = append(all, extra...)
	return New(all...)
}

// All returns the templates in catalog order.
func (c *Catalog) All() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

func (c *Catalog) Get(id string) (Template, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return c.templates[i], true
}

// ByCategory returns the templates of cat in catalog order.
func (c *Catalog) ByCategory(cat Category) []Template {
	var out []Template
	for _, t := range c.templates {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}
