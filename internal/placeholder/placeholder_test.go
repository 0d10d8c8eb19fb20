package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "dedup keeps first occurrence order", body: "[A] and [A] again, [B].", want: []string{"A", "B"}},
		{name: "no brackets", body: "Dear Sir, regards.", want: []string{}},
		{name: "empty body", body: "", want: []string{}},
		{name: "names keep spaces", body: "A/c [Account Number] at [Branch Name]", want: []string{"Account Number", "Branch Name"}},
		{name: "unmatched open", body: "[Name and more", want: []string{}},
		{name: "unmatched close", body: "Name] here", want: []string{}},
		{name: "nested brackets match inner pair", body: "[outer [inner] tail]", want: []string{"inner"}},
		{name: "empty brackets ignored", body: "[] [X]", want: []string{"X"}},
		{name: "newline breaks a pair", body: "[Line\nBreak] [Ok]", want: []string{"Ok"}},
		{name: "special characters", body: "Pay [Amount (Rs.)] by [Date*]", want: []string{"Amount (Rs.)", "Date*"}},
		{name: "devanagari names", body: "नाम: [नाम], दिनांक: [दिनांक], [नाम]", want: []string{"नाम", "दिनांक"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.body)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Extract(tt.body), "idempotent")
		})
	}
}

func TestReconcile(t *testing.T) {
	got := Reconcile(map[string]string{"A": "x", "C": "z"}, []string{"A", "B"})
	assert.Equal(t, map[string]string{"A": "x", "B": ""}, got)

	assert.Empty(t, Reconcile(map[string]string{"A": "x"}, nil))
	assert.Equal(t, map[string]string{"A": ""}, Reconcile(nil, []string{"A"}))
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	old := map[string]string{"A": "x", "C": "z"}
	_ = Reconcile(old, []string{"A"})
	assert.Equal(t, map[string]string{"A": "x", "C": "z"}, old)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		names  []string
		values map[string]string
		want   string
	}{
		{
			name:   "all occurrences replaced",
			body:   "Dear [Name], re: [Name].",
			names:  []string{"Name"},
			values: map[string]string{"Name": "Rahul"},
			want:   "Dear Rahul, re: Rahul.",
		},
		{
			name:   "blank value stays literal",
			body:   "Dear [Name].",
			names:  []string{"Name"},
			values: map[string]string{"Name": ""},
			want:   "Dear [Name].",
		},
		{
			name:   "whitespace value stays literal",
			body:   "Dear [Name], from [City].",
			names:  []string{"Name", "City"},
			values: map[string]string{"Name": "  \t", "City": "Pune"},
			want:   "Dear [Name], from Pune.",
		},
		{
			name:   "pattern characters in name",
			body:   "Amount: [Amount (Rs.)] only. Total [Amount (Rs.)].",
			names:  []string{"Amount (Rs.)"},
			values: map[string]string{"Amount (Rs.)": "5,000"},
			want:   "Amount: 5,000 only. Total 5,000.",
		},
		{
			name:   "unlisted names untouched",
			body:   "[A] [B]",
			names:  []string{"A"},
			values: map[string]string{"A": "1", "B": "2"},
			want:   "1 [B]",
		},
		{
			name:   "values are not rescanned",
			body:   "[A] [B]",
			names:  []string{"A", "B"},
			values: map[string]string{"A": "[B]", "B": "2"},
			want:   "[B] 2",
		},
		{
			name:   "dollar signs are literal",
			body:   "Fee [Fee]",
			names:  []string{"Fee"},
			values: map[string]string{"Fee": "$1 ${x}"},
			want:   "Fee $1 ${x}",
		},
		{
			name:   "no names returns body",
			body:   "Dear [Name].",
			names:  nil,
			values: nil,
			want:   "Dear [Name].",
		},
		{
			name:   "hindi body",
			body:   "सेवा में,\n[शाखा प्रबंधक]\nदिनांक: [दिनांक]",
			names:  []string{"शाखा प्रबंधक", "दिनांक"},
			values: map[string]string{"शाखा प्रबंधक": "श्रीमान", "दिनांक": ""},
			want:   "सेवा में,\nश्रीमान\nदिनांक: [दिनांक]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.body, tt.names, tt.values))
		})
	}
}

func TestMissing(t *testing.T) {
	names := []string{"A", "B", "C"}
	values := map[string]string{"A": "x", "B": "  ", "C": ""}
	assert.Equal(t, []string{"B", "C"}, Missing(names, values))
	assert.Empty(t, Missing([]string{"A"}, map[string]string{"A": "done"}))
}

func TestToken(t *testing.T) {
	assert.Equal(t, "[Account Number]", Token("Account Number"))
}
