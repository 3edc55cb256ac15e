// Copyright (c) 2026 Lotsawa. All rights reserved.

package lang_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/pkg/pointer"
)

/*
TestFromColumns_PassesAbsentThrough verifies that missing languages stay null
on the wire instead of borrowing another language's value.
*/
func TestFromColumns_PassesAbsentThrough(t *testing.T) {
	text := lang.FromColumns(pointer.To("བཀའ་འགྱུར།"), pointer.To("Kangyur"), nil, pointer.To(""))

	raw, err := json.Marshal(text)
	require.NoError(t, err)

	assert.JSONEq(t, `{"bo":"བཀའ་འགྱུར།","en":"Kangyur","sa":null,"zh":null}`, string(raw))
}

/*
TestText_Matches checks the case-insensitive substring predicate.
*/
func TestText_Matches(t *testing.T) {
	text := lang.Text{
		English:  pointer.To("The Heart Sutra"),
		Sanskrit: pointer.To("Prajñāpāramitāhṛdaya"),
	}

	tests := []struct {
		term string
		want bool
	}{
		{"heart", true},
		{"HEART SU", true},
		{"PRAJÑĀ", true},
		{"diamond", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, text.Matches(tt.term))
		})
	}
}

/*
TestText_Display prefers English and otherwise the first present language.
*/
func TestText_Display(t *testing.T) {
	assert.Equal(t, "Kangyur", lang.Text{Tibetan: pointer.To("བཀའ"), English: pointer.To("Kangyur")}.Display())
	assert.Equal(t, "བཀའ", lang.Text{Tibetan: pointer.To("བཀའ"), Chinese: pointer.To("甘珠尔")}.Display())
	assert.Equal(t, "", lang.Text{}.Display())
	assert.True(t, lang.Text{English: pointer.To(" ")}.IsEmpty())
}

/*
TestParseCode accepts both codes and language names.
*/
func TestParseCode(t *testing.T) {
	code, ok := lang.ParseCode("Tibetan")
	assert.True(t, ok)
	assert.Equal(t, lang.Tibetan, code)

	code, ok = lang.ParseCode("zh")
	assert.True(t, ok)
	assert.Equal(t, lang.Chinese, code)

	_, ok = lang.ParseCode("pali")
	assert.False(t, ok)
}

func TestRow_RoundTrip(t *testing.T) {
	original := lang.Text{Tibetan: pointer.To("བཀའ་འགྱུར།"), English: pointer.To("Kangyur")}

	var row lang.Row
	targets := row.Targets()
	for i, value := range original.Args() {
		*(targets[i].(**string)) = value.(*string)
	}

	assert.Equal(t, original, row.Text())
}

/*
TestContains_LowercasesLikeILike pins the comparison to simple lowercasing so
the memory backend agrees with Postgres ILIKE.
*/
func TestContains_LowercasesLikeILike(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		term     string
		want     bool
	}{
		{"ascii", "Kangyur", "KANGYUR", true},
		{"diacritics", "Sūtra", "SŪTRA", true},
		{"sharp_s_not_expanded", "Straße", "strasse", false},
		{"sharp_s_literal", "Straße", "STRAßE", true},
		{"tibetan_unchanged", "བཀའ་འགྱུར", "འགྱུར", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lang.Contains(tt.haystack, tt.term))
		})
	}
}
