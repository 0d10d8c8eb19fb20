package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatText Format = "txt"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

var Formats = []Format{FormatText, FormatHTML, FormatPDF}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "txt", "text":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	default:
		names := make([]string, len(Formats))
		for i, f := range Formats {
			names[i] = string(f)
		}
		return "", fmt.Errorf("unknown export format %q (want %s)", s, strings.Join(names, ", "))
	}
}

// FormatFor picks the format from the file extension of path.
func FormatFor(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%s has no extension (want .txt, .html or .pdf)", path)
	}
	return ParseFormat(ext)
}

// Exporter writes documents into a directory.
type Exporter struct {
	Dir string
	PDF *PDFExporter
}

// Save writes d in format f and returns the path written.
func (e *Exporter) Save(ctx context.Context, d *Document, f Format) (string, error) {
	path := filepath.Join(e.Dir, d.FileName(string(f)))
	return path, e.SaveAs(ctx, d, f, path)
}

func (e *Exporter) SaveAs(ctx context.Context, d *Document, f Format, path string) error {
	switch f {
	case FormatText:
		return d.WriteText(path)
	case FormatHTML:
		return d.WriteHTML(path)
	case FormatPDF:
		pdf := e.PDF
		if pdf == nil {
			pdf = &PDFExporter{}
		}
		return pdf.Export(ctx, d, path)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}
