// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package lang defines the multilingual record attached to every catalog entity.

Stored rows keep one flat column per language (tibetan_title, english_title,
...). Responses group those columns under a single object keyed by language
code:

	{"bo": "...", "en": "...", "sa": null, "zh": null}

Missing languages stay null. This package never substitutes one language for
another; English-as-fallback is left to the presentation layer.
*/
package lang

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// # Language Codes

// Code is a BCP-47 language code supported by the catalog.
type Code string

const (
	Tibetan  Code = "bo"
	English  Code = "en"
	Sanskrit Code = "sa"
	Chinese  Code = "zh"
)

// Codes lists the supported languages in their canonical order.
var Codes = []Code{Tibetan, English, Sanskrit, Chinese}

// ParseCode resolves a code or a language name ("tibetan", "en", ...).
func ParseCode(raw string) (Code, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bo", "tibetan":
		return Tibetan, true
	case "en", "english":
		return English, true
	case "sa", "sanskrit":
		return Sanskrit, true
	case "zh", "chinese":
		return Chinese, true
	}
	return "", false
}

// # Multilingual Record

// Text is a set of per-language values for one logical field.
type Text struct {
	Tibetan  *string `json:"bo"       yaml:"bo"`
	English  *string `json:"en"       yaml:"en"`
	Sanskrit *string `json:"sa"       yaml:"sa"`
	Chinese  *string `json:"zh"       yaml:"zh"`
}

// FromColumns builds a [Text] from flat stored columns. Empty strings count as
// absent.
func FromColumns(tibetan, english, sanskrit, chinese *string) Text {
	return Text{
		Tibetan:  present(tibetan),
		English:  present(english),
		Sanskrit: present(sanskrit),
		Chinese:  present(chinese),
	}
}

// Columns returns the values in column order (bo, en, sa, zh).
func (t Text) Columns() (tibetan, english, sanskrit, chinese *string) {
	return t.Tibetan, t.English, t.Sanskrit, t.Chinese
}

// Get returns the value for code, or nil.
func (t Text) Get(code Code) *string {
	switch code {
	case Tibetan:
		return t.Tibetan
	case English:
		return t.English
	case Sanskrit:
		return t.Sanskrit
	case Chinese:
		return t.Chinese
	}
	return nil
}

// Has reports whether a non-blank value exists for code.
func (t Text) Has(code Code) bool {
	return present(t.Get(code)) != nil
}

// IsEmpty reports whether no language has a value.
func (t Text) IsEmpty() bool {
	for _, code := range Codes {
		if t.Has(code) {
			return false
		}
	}
	return true
}

// Display returns English when present, otherwise the first present language.
func (t Text) Display() string {
	if t.Has(English) {
		return *t.English
	}
	for _, code := range Codes {
		if value := t.Get(code); present(value) != nil {
			return *value
		}
	}
	return ""
}

// Matches reports whether any present language contains term, ignoring case.
func (t Text) Matches(term string) bool {
	for _, code := range Codes {
		if value := t.Get(code); value != nil && Contains(*value, term) {
			return true
		}
	}
	return false
}

// Args returns the values in column order for use as SQL arguments.
func (t Text) Args() []any {
	return []any{t.Tibetan, t.English, t.Sanskrit, t.Chinese}
}

// Row receives the four language columns of one field from a database row.
type Row struct {
	tibetan, english, sanskrit, chinese *string
}

// Targets returns scan destinations in column order.
func (r *Row) Targets() []any {
	return []any{&r.tibetan, &r.english, &r.sanskrit, &r.chinese}
}

// Text derives the multilingual record from the scanned columns.
func (r *Row) Text() Text {
	return FromColumns(r.tibetan, r.english, r.sanskrit, r.chinese)
}

// # Matching

// Contains is the catalog's search predicate: a case-insensitive substring
// test. Both sides are lowercased rune by rune, the way Postgres ILIKE
// compares, so "ß" does not match "ss". An empty term matches nothing.
func Contains(haystack, term string) bool {
	if strings.TrimSpace(term) == "" {
		return false
	}
	lower := cases.Lower(language.Und)
	return strings.Contains(lower.String(haystack), lower.String(term))
}

func present(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}
