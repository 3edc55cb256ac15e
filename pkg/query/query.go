// Copyright (c) 2026 Lotsawa. All rights reserved.

// Package query holds small helpers for building filters from user input.
package query

import (
	"fmt"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// likeEscaper escapes the LIKE wildcards and the escape character itself.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern turns free text into a substring pattern for SQL LIKE/ILIKE.
// User-typed '%' and '_' match literally.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

// ILikeAny builds "(a ILIKE $n OR b ILIKE $n ...)" over columns, all bound to
// the same placeholder.
func ILikeAny(columns []string, placeholder int) string {
	clauses := make([]string, len(columns))
	for i, column := range columns {
		clauses[i] = fmt.Sprintf("%s ILIKE $%d", column, placeholder)
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}
