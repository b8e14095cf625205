package query

import "strings"

// Direction is an ordering direction.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// SortField is one (field, direction) pair of a sort spec.
type SortField struct {
	Field     string
	Direction Direction
}

// SortSpec is an ordered sort. Insertion order defines tie-break precedence
// as applied to the store's stable ordering.
type SortSpec []SortField

// ParseSort parses a comma-separated "$orderBy" expression such as
// "created_at desc, title asc". Tokens whose direction is neither asc nor
// desc are silently dropped; the parser is permissive, not strict. An empty
// result means the store applies its default ordering (newest first).
func ParseSort(input string) SortSpec {
	var spec SortSpec
	for _, token := range strings.Split(input, ",") {
		parts := strings.Fields(token)
		if len(parts) != 2 {
			continue
		}
		direction := Direction(strings.ToLower(parts[1]))
		if direction != DirectionAsc && direction != DirectionDesc {
			continue
		}
		spec = append(spec, SortField{Field: parts[0], Direction: direction})
	}
	return spec
}
