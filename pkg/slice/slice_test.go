// Copyright (c) 2026 Lotsawa. All rights reserved.

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lotsawa/canon/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.NotNil(t, slice.Map[int, string](nil, strconv.Itoa))
}

func TestTake(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		n     int
		want  []int
	}{
		{"shorter than n", []int{1, 2}, 10, []int{1, 2}},
		{"cut", []int{1, 2, 3}, 2, []int{1, 2}},
		{"zero", []int{1}, 0, []int{}},
		{"negative", []int{1}, -1, []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slice.Take(tc.input, tc.n))
		})
	}
}

func TestValues(t *testing.T) {
	a, b := 1, 2
	assert.Equal(t, []int{1, 2}, slice.Values([]*int{&a, &b}))
	assert.Equal(t, []int{}, slice.Values[int](nil))
}
