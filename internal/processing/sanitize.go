// Package processing holds pure text transforms applied before rendering.
package processing

import "strings"

var foldReplacer = strings.NewReplacer(
	// typographic punctuation
	"„", "\"", "“", "\"", "”", "\"",
	"‚", "'", "‘", "'", "’", "'",
	"´", "'", "`", "'",
	"–", "-", "—", "-",
	"…", "...",
	// German umlauts
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ß", "ss",
	// French accents
	"à", "a", "â", "a", "é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i", "ô", "o", "ù", "u", "û", "u", "ç", "c",
	// Spanish accents
	"á", "a", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
)

// Sanitize folds common typographic characters, umlauts, and accents to
// ASCII equivalents and strips whatever non-ASCII remains. Constrained
// displays cannot draw the full character set.
func Sanitize(s string) string {
	folded := foldReplacer.Replace(s)

	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
