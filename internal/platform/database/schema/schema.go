// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package schema names every relational table and column used by the Postgres
repositories.

Repositories build SQL with fmt.Sprintf from these descriptors rather than
repeating string literals, so a renamed column is a one-line change here and
a compile error everywhere it was used.
*/
package schema

// LangColumns names the four per-language columns backing one multilingual field.
type LangColumns struct {
	Tibetan  string
	English  string
	Sanskrit string
	Chinese  string
}

// langColumns derives the column set for field, e.g. "title" → tibetan_title.
func langColumns(field string) LangColumns {
	return LangColumns{
		Tibetan:  "tibetan_" + field,
		English:  "english_" + field,
		Sanskrit: "sanskrit_" + field,
		Chinese:  "chinese_" + field,
	}
}

// List returns the columns in storage order (bo, en, sa, zh).
func (c LangColumns) List() []string {
	return []string{c.Tibetan, c.English, c.Sanskrit, c.Chinese}
}
