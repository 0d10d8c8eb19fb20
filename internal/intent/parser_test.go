package intent

import (
	"testing"

	"github.com/sant0-9/patra/internal/catalog"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		request      string
		wantRequest  string
		wantLanguage catalog.Language
		wantCategory catalog.Category
	}{
		{
			name:         "english sick leave",
			request:      "Sick leave for 2 days",
			wantRequest:  "Sick leave for 2 days",
			wantLanguage: catalog.English,
			wantCategory: catalog.School,
		},
		{
			name:         "trimmed",
			request:      "  Bank account close application \n",
			wantRequest:  "Bank account close application",
			wantLanguage: catalog.English,
			wantCategory: catalog.Banking,
		},
		{
			name:         "hindi script",
			request:      "बिजली बिल सुधार के लिए पत्र",
			wantRequest:  "बिजली बिल सुधार के लिए पत्र",
			wantLanguage: catalog.Hindi,
			wantCategory: catalog.Utility,
		},
		{
			name:         "mixed script counts as hindi",
			request:      "Complaint about stray dogs कुत्ते",
			wantRequest:  "Complaint about stray dogs कुत्ते",
			wantLanguage: catalog.Hindi,
			wantCategory: catalog.General,
		},
		{
			name:         "hinglish stays english",
			request:      "bijli ka bill galat aaya hai",
			wantRequest:  "bijli ka bill galat aaya hai",
			wantLanguage: catalog.English,
			wantCategory: catalog.Utility,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.request)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.Request != tt.wantRequest {
				t.Errorf("Request = %q, want %q", got.Request, tt.wantRequest)
			}
			if got.Language != tt.wantLanguage {
				t.Errorf("Language = %v, want %v", got.Language, tt.wantLanguage)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %v, want %v", got.Category, tt.wantCategory)
			}
		})
	}
}

func TestParseRejectsBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		if _, err := Parse(in); err != ErrEmptyRequest {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyRequest", in, err)
		}
	}
}

func TestHasDevanagari(t *testing.T) {
	if !HasDevanagari("abc क") {
		t.Error("expected Devanagari to be found")
	}
	if HasDevanagari("plain ascii, café") {
		t.Error("unexpected Devanagari")
	}
}
