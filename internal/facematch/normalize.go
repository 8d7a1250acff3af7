package facematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// FoldName removes diacritical marks and folds full-width characters
// (e.g., "Jiří" -> "Jiri", "ＡＢＣ" -> "ABC").
func FoldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), width.Fold, norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// NormalizePersonName normalizes a name for comparison: folded, lowercase,
// dashes and underscores treated as spaces, whitespace collapsed.
func NormalizePersonName(name string) string {
	name = strings.ToLower(FoldName(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
