// Package placeholder finds and fills [Placeholder Name] tokens in letter
// bodies. Names are treated as literal text throughout; nothing here builds a
// pattern from a name.
package placeholder

import "strings"

const (
	open  = '['
	close = ']'
)

// token is one well-formed [name] occurrence in a body.
type token struct {
	start, end int // byte offsets of '[' and one past ']'
	name       string
}

// scan walks body left to right and reports every bracket pair whose inner
// text is non-empty and contains no bracket or newline. An unmatched '['
// is skipped and scanning resumes at the next character, so malformed spans
// simply produce no token.
func scan(body string, fn func(token)) {
	for i := 0; i < len(body); i++ {
		if body[i] != open {
			continue
		}
		j := i + 1
		for j < len(body) && body[j] != close && body[j] != open && body[j] != '\n' {
			j++
		}
		if j >= len(body) || body[j] != close || j == i+1 {
			continue
		}
		fn(token{start: i, end: j + 1, name: body[i+1 : j]})
		i = j
	}
}

// Extract returns the unique placeholder names in body in order of first
// appearance. It returns an empty, non-nil slice when there are none.
func Extract(body string) []string {
	names := []string{}
	seen := make(map[string]bool)
	scan(body, func(tok token) {
		if seen[tok.name] {
			return
		}
		seen[tok.name] = true
		names = append(names, tok.name)
	})
	return names
}

// Reconcile builds the form values for a new placeholder set: exactly the
// keys in names, each carrying its old value when there was one.
func Reconcile(old map[string]string, names []string) map[string]string {
	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = old[name]
	}
	return values
}

// Render substitutes every occurrence of each listed placeholder with its
// value. Blank or whitespace-only values leave the literal [name] in place so unfilled fields
// stay visible. Substituted text is never scanned again.
func Render(body string, names []string, values map[string]string) string {
	if len(names) == 0 {
		return body
	}

	listed := make(map[string]bool, len(names))
	for _, name := range names {
		listed[name] = true
	}

	var b strings.Builder
	b.Grow(len(body))
	last := 0
	scan(body, func(tok token) {
		if !listed[tok.name] {
			return
		}
		v := values[tok.name]
		if strings.TrimSpace(v) == "" {
			return
		}
		b.WriteString(body[last:tok.start])
		b.WriteString(v)
		last = tok.end
	})
	b.WriteString(body[last:])
	return b.String()
}

// Missing lists, in order, the names whose value is still blank.
func Missing(names []string, values map[string]string) []string {
	var out []string
	for _, name := range names {
		if strings.TrimSpace(values[name]) == "" {
			out = append(out, name)
		}
	}
	return out
}

// Token formats name as it appears in a body.
func Token(name string) string {
	return string(open) + name + string(close)
}
