package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Concat(
		maps.All(map[string]int{"a": 1}),
		maps.All(map[string]int{"b": 2, "c": 3}),
	)

	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, maps.Collect(seq))

	count := 0
	for range seq {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestSpans(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name  string
		total int
		limit int
		spans [][2]int
	}{
		{"exact", 504, 252, [][2]int{{0, 252}, {252, 252}}},
		{"remainder", 600, 252, [][2]int{{0, 252}, {252, 252}, {504, 96}}},
		{"small", 32, 252, [][2]int{{0, 32}}},
		{"empty", 0, 252, nil},
		{"no limit", 10, 0, nil},
	}

	for _, tt := range tests {
		var spans [][2]int
		for offset, size := range Spans(tt.total, tt.limit) {
			spans = append(spans, [2]int{offset, size})
		}
		assert.Equal(tt.spans, spans, tt.name)
	}
}
