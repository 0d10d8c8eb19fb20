package drafts

import "github.com/sant0-9/patra/internal/catalog"

// Restore turns a saved draft back into a template for further editing. The
// saved text goes into the slot of the language it was written in. When the
// draft came from a catalog template that still exists, the other slot keeps
// that template's original body along with its category, tags and FAQs;
// otherwise the other slot is empty.
func Restore(d Draft, c *catalog.Catalog) catalog.Template {
	lang := d.Language
	if lang == "" {
		lang = catalog.English
	}

	t := catalog.Template{
		ID:       catalog.GeneratedPrefix + d.ID,
		Title:    d.Title,
		Category: catalog.General,
	}
	if d.FromCatalog() && c != nil {
		if orig, ok := c.Get(*d.TemplateID); ok {
			t = orig
			t.Title = d.Title
		}
	}

	if lang == catalog.Hindi {
		t.HindiBody = d.Content
	} else {
		t.EnglishBody = d.Content
	}
	return t
}
