package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/agenthub/internal/domain"
)

func TestParseFilterSingleClause(t *testing.T) {
	expr, err := ParseFilter("status eq Submitted")
	require.NoError(t, err)

	assert.Equal(t, CombinatorNone, expr.Combinator)
	require.Len(t, expr.Clauses, 1)
	assert.Equal(t, Clause{Field: "status", Operator: OpEq, Value: "Submitted"}, expr.Clauses[0])
}

func TestParseFilterValueKeepsSpaces(t *testing.T) {
	expr, err := ParseFilter("status eq Under Development")
	require.NoError(t, err)

	require.Len(t, expr.Clauses, 1)
	assert.Equal(t, "Under Development", expr.Clauses[0].Value)
}

func TestParseFilterAnd(t *testing.T) {
	expr, err := ParseFilter("price gt 100 and weeks lt 5")
	require.NoError(t, err)

	assert.Equal(t, CombinatorAnd, expr.Combinator)
	require.Len(t, expr.Clauses, 2)
	assert.Equal(t, Clause{Field: "price", Operator: OpGt, Value: "100"}, expr.Clauses[0])
	assert.Equal(t, Clause{Field: "weeks", Operator: OpLt, Value: "5"}, expr.Clauses[1])
}

func TestParseFilterOr(t *testing.T) {
	expr, err := ParseFilter("status eq Submitted or status eq Delivered")
	require.NoError(t, err)

	assert.Equal(t, CombinatorOr, expr.Combinator)
	assert.Len(t, expr.Clauses, 2)
}

// The grammar checks for " or " before " and ". An expression containing both
// splits on or, and the leftover and-text is swallowed into the first clause's
// value. Mixed combinators are not supported; this pins the quirk down.
func TestParseFilterOrWinsOverAnd(t *testing.T) {
	expr, err := ParseFilter("a eq 1 and b eq 2 or c eq 3")
	require.NoError(t, err)

	assert.Equal(t, CombinatorOr, expr.Combinator)
	require.Len(t, expr.Clauses, 2)
	assert.Equal(t, "1 and b eq 2", expr.Clauses[0].Value)
	assert.Equal(t, Clause{Field: "c", Operator: OpEq, Value: "3"}, expr.Clauses[1])
}

func TestParseFilterEmpty(t *testing.T) {
	expr, err := ParseFilter("   ")
	require.NoError(t, err)

	assert.Equal(t, CombinatorNone, expr.Combinator)
	assert.Empty(t, expr.Clauses)
}

func TestParseFilterUnknownOperator(t *testing.T) {
	_, err := ParseFilter("status equals Submitted")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidFilterSyntax)
}

func TestParseFilterShortClause(t *testing.T) {
	for _, input := range []string{"status", "status eq", "and"} {
		_, err := ParseFilter(input)
		assert.Truef(t, errors.Is(err, domain.ErrInvalidFilterSyntax), "input %q: got %v", input, err)
	}
}

func TestParseFilterIn(t *testing.T) {
	expr, err := ParseFilter("status in Submitted,Delivered")
	require.NoError(t, err)

	require.Len(t, expr.Clauses, 1)
	assert.Equal(t, OpIn, expr.Clauses[0].Operator)
	assert.Equal(t, "Submitted,Delivered", expr.Clauses[0].Value)
}

func TestExpressionMentions(t *testing.T) {
	expr, err := ParseFilter("is_deleted eq true")
	require.NoError(t, err)

	assert.True(t, expr.Mentions("is_deleted"))
	assert.False(t, expr.Mentions("status"))
}
