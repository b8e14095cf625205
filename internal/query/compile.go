package query

import "strings"

// FieldIsDeleted is the soft-delete flag present on every collection.
const FieldIsDeleted = "is_deleted"

// Condition is one backend-native field condition. For OpIn the membership
// set lives in Values; every other operator compares against Value.
type Condition struct {
	Field    string
	Operator Operator
	Value    string
	Values   []string
}

// CompiledFilter is the store-facing form of a filter expression. Conditions
// hold the caller's clauses under their combinator. Scope holds implicit
// conditions (soft-delete exclusion, tenancy) that are always AND-ed onto the
// result regardless of the expression's own combinator, so OR logic can never
// widen past them.
type CompiledFilter struct {
	Combinator Combinator
	Conditions []Condition
	Scope      []Condition
}

// Compile lowers a parsed expression into a compiled filter. Unless the
// expression itself references is_deleted, an is_deleted = false scope
// condition is injected.
func Compile(expr Expression) CompiledFilter {
	compiled := CompiledFilter{Combinator: expr.Combinator}

	for _, clause := range expr.Clauses {
		cond := Condition{Field: clause.Field, Operator: clause.Operator, Value: clause.Value}
		if clause.Operator == OpIn {
			cond.Values = splitMembership(clause.Value)
			cond.Value = ""
		}
		compiled.Conditions = append(compiled.Conditions, cond)
	}

	if !expr.Mentions(FieldIsDeleted) {
		compiled.Scope = append(compiled.Scope, Condition{
			Field:    FieldIsDeleted,
			Operator: OpEq,
			Value:    "false",
		})
	}

	return compiled
}

// WithScope returns a copy of the filter with extra implicit AND conditions,
// such as a tenant's company_id restriction.
func (f CompiledFilter) WithScope(conds ...Condition) CompiledFilter {
	scoped := f
	scoped.Scope = append(append([]Condition{}, f.Scope...), conds...)
	return scoped
}

func splitMembership(value string) []string {
	raw := strings.Split(value, ",")
	members := make([]string, 0, len(raw))
	for _, member := range raw {
		member = strings.TrimSpace(member)
		if member != "" {
			members = append(members, member)
		}
	}
	return members
}
