package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSort(t *testing.T) {
	spec := ParseSort("created_at desc, title asc")

	assert.Equal(t, SortSpec{
		{Field: "created_at", Direction: DirectionDesc},
		{Field: "title", Direction: DirectionAsc},
	}, spec)
}

func TestParseSortDropsInvalidTokens(t *testing.T) {
	spec := ParseSort("created_at desc, title, price sideways, name asc")

	assert.Equal(t, SortSpec{
		{Field: "created_at", Direction: DirectionDesc},
		{Field: "name", Direction: DirectionAsc},
	}, spec)
}

func TestParseSortCaseInsensitiveDirection(t *testing.T) {
	spec := ParseSort("title DESC")

	assert.Equal(t, SortSpec{{Field: "title", Direction: DirectionDesc}}, spec)
}

func TestParseSortEmpty(t *testing.T) {
	assert.Empty(t, ParseSort(""))
	assert.Empty(t, ParseSort("   ,  "))
}
