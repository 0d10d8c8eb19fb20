package document

import (
	"bytes"
	"html/template"

	"github.com/sant0-9/patra/internal/catalog"
)

var pageTemplate = template.Must(template.New("letter").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 20mm; }
body { font-family: {{.Font}}; font-size: 12pt; line-height: 1.6; color: #111; }
.letter { white-space: pre-wrap; word-wrap: break-word; }
</style>
</head>
<body>
<div class="letter">{{.Text}}</div>
</body>
</html>
`))

const (
	latinFont      = `"Times New Roman", Times, serif`
	devanagariFont = `"Noto Sans Devanagari", "Mangal", "Lohit Devanagari", sans-serif`
)

type pageData struct {
	Lang  string
	Title string
	Font  template.CSS
	Text  string
}

// HTML renders the letter as a standalone A4 page. Hindi letters get a
// Devanagari font stack.
func (d *Document) HTML() ([]byte, error) {
	font := latinFont
	if d.Language == catalog.Hindi {
		font = devanagariFont
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Lang:  d.Language.Tag().String(),
		Title: d.Title,
		Font:  template.CSS(font),
		Text:  d.Text,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) WriteHTML(path string) error {
	data, err := d.HTML()
	if err != nil {
		return err
	}
	return writeFile(path, data)
}
