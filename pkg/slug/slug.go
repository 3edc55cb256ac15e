// Copyright (c) 2026 Lotsawa. All rights reserved.

// Package slug derives ASCII URL slugs for catalog categories.
//
// Romanised Sanskrit and Tibetan titles carry diacritics ("Prajñāpāramitā",
// "Śūraṅgama"); those are folded to their base letters so the slug stays
// readable ("prajnaparamita"). Letters outside ASCII that have no base letter
// (Tibetan script, Chinese) are dropped, so callers should derive slugs from a
// romanised title.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds derived slugs.
const MaxLength = 80

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// Runs of anything other than [a-z0-9] become a single hyphen; leading and
// trailing hyphens are trimmed. The result may be empty.
func From(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, _ := transform.String(folder, s)

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	result := builder.String()
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}
