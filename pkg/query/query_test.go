// Copyright (c) 2026 Lotsawa. All rights reserved.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lotsawa/canon/pkg/query"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%heart%", query.LikePattern(" heart "))
	assert.Equal(t, `%100\% pure\_gold\\%`, query.LikePattern(`100% pure_gold\`))
}

func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"news", "timeline"}, query.StringSlice(" news, ,timeline "))
}

func TestILikeAny(t *testing.T) {
	assert.Equal(t,
		"(t.slug ILIKE $2 OR t.english_title ILIKE $2)",
		query.ILikeAny([]string{"t.slug", "t.english_title"}, 2),
	)
}
