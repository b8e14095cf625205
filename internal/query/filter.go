package query

import (
	"fmt"
	"strings"

	"github.com/rpattn/agenthub/internal/domain"
)

// Operator is a clause comparison operator. The set is closed; anything else
// is a parse failure.
type Operator string

const (
	OpEq   Operator = "eq"
	OpNe   Operator = "ne"
	OpGt   Operator = "gt"
	OpGte  Operator = "gte"
	OpLt   Operator = "lt"
	OpLte  Operator = "lte"
	OpLike Operator = "like"
	OpIn   Operator = "in"
)

var operators = map[Operator]struct{}{
	OpEq: {}, OpNe: {}, OpGt: {}, OpGte: {}, OpLt: {}, OpLte: {}, OpLike: {}, OpIn: {},
}

// Combinator joins all clauses of one expression. A single expression uses at
// most one combinator; there are no nested sub-expressions and no precedence.
type Combinator string

const (
	CombinatorNone Combinator = "none"
	CombinatorAnd  Combinator = "and"
	CombinatorOr   Combinator = "or"
)

// Clause is a single "field operator value" condition. Value keeps any
// interior spaces; field and operator cannot contain spaces.
type Clause struct {
	Field    string
	Operator Operator
	Value    string
}

// Expression is a parsed $filter string: a flat clause list under one
// combinator.
type Expression struct {
	Combinator Combinator
	Clauses    []Clause
}

// Mentions reports whether any clause references the given field. The
// compiler uses this to decide whether to inject the soft-delete condition.
func (e Expression) Mentions(field string) bool {
	for _, c := range e.Clauses {
		if c.Field == field {
			return true
		}
	}
	return false
}

// ParseFilter parses a flat filter expression such as
// "status eq Submitted" or "price gt 100 and weeks lt 5".
//
// Combinator detection scans for the literal tokens " or " then " and "
// (case-sensitive, space-delimited); the first found wins and both never
// apply to one expression. Checking or before and is a long-standing quirk
// of this grammar and is kept deliberately.
func ParseFilter(input string) (Expression, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Expression{Combinator: CombinatorNone}, nil
	}

	combinator := CombinatorNone
	parts := []string{trimmed}
	switch {
	case strings.Contains(trimmed, " or "):
		combinator = CombinatorOr
		parts = strings.Split(trimmed, " or ")
	case strings.Contains(trimmed, " and "):
		combinator = CombinatorAnd
		parts = strings.Split(trimmed, " and ")
	}

	clauses := make([]Clause, 0, len(parts))
	for _, part := range parts {
		clause, err := parseClause(part)
		if err != nil {
			return Expression{}, err
		}
		clauses = append(clauses, clause)
	}

	if len(clauses) < 2 {
		combinator = CombinatorNone
	}

	return Expression{Combinator: combinator, Clauses: clauses}, nil
}

func parseClause(raw string) (Clause, error) {
	tokens := strings.Fields(raw)
	if len(tokens) < 3 {
		return Clause{}, fmt.Errorf("%w: clause %q needs field, operator and value", domain.ErrInvalidFilterSyntax, strings.TrimSpace(raw))
	}

	op := Operator(tokens[1])
	if _, ok := operators[op]; !ok {
		return Clause{}, fmt.Errorf("%w: unknown operator %q", domain.ErrInvalidFilterSyntax, tokens[1])
	}

	return Clause{
		Field:    tokens[0],
		Operator: op,
		Value:    strings.Join(tokens[2:], " "),
	}, nil
}
