package category

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

type Lang string

const (
	LangMalay   Lang = "ms"
	LangEnglish Lang = "en"
)

var separators = strings.NewReplacer(" ", "_", "-", "_", "/", "_", ".", "_")

// Normalize lower-cases raw, trims it and joins words with underscores.
func Normalize(raw string) string {
	s := separators.Replace(strings.ToLower(strings.TrimSpace(raw)))

	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}

	return strings.Trim(s, "_")
}

// Options returns the ordered catalog for kind. The slice is a copy.
func Options(kind entry.Kind) []Option {
	opts := catalog[kind]
	out := make([]Option, len(opts))
	copy(out, opts)

	return out
}

// Resolve maps free text to a catalog code of kind. It tries the code, then
// either label, then the longest alias found inside the text. When nothing
// matches it returns the normalized text and false.
func Resolve(kind entry.Kind, raw string) (string, bool) {
	norm := Normalize(raw)
	if norm == "" {
		return "", false
	}

	opts := catalog[kind]

	for _, o := range opts {
		if o.Code == norm {
			return o.Code, true
		}
	}

	for _, o := range opts {
		if Normalize(o.Label) == norm || Normalize(o.English) == norm {
			return o.Code, true
		}
	}

	best, bestLen := "", 0

	for _, o := range opts {
		for _, a := range o.aliases {
			if len(a) > bestLen && containsWord(norm, a) {
				best, bestLen = o.Code, len(a)
			}
		}
	}

	if best != "" {
		return best, true
	}

	return norm, false
}

// Label is the display name of code in lang. Unknown codes are title-cased.
func Label(kind entry.Kind, code string, lang Lang) string {
	for _, o := range catalog[kind] {
		if o.Code != code {
			continue
		}

		if lang == LangEnglish {
			return o.English
		}

		return o.Label
	}

	if strings.TrimSpace(code) == "" {
		return ""
	}

	return cases.Title(language.Und).String(strings.ReplaceAll(code, "_", " "))
}

// containsWord reports whether alias occurs in s on underscore boundaries.
func containsWord(s, alias string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], alias)
		if j < 0 {
			return false
		}

		start := i + j
		end := start + len(alias)

		if (start == 0 || s[start-1] == '_') && (end == len(s) || s[end] == '_') {
			return true
		}

		i = start + 1
	}
}
