package postgres

import (
	"strings"

	"user-crud-service/internal/domain/user"
)

// Column identifiers of the users table. Only these constants are ever
// spliced into SQL text; values always travel as bound parameters.
const (
	columnID           = "id"
	columnName         = "name"
	columnEmail        = "email"
	columnPlaceOfBirth = "placeofbirth"
)

// assignment is a single "column = ?" pair of an UPDATE statement.
type assignment struct {
	column string
	value  any
}

// assignments lists the supplied patch fields in a fixed order:
// name, email, place of birth.
func assignments(p user.Patch) []assignment {
	set := make([]assignment, 0, 3)
	if p.Name != nil {
		set = append(set, assignment{column: columnName, value: *p.Name})
	}
	if p.Email != nil {
		set = append(set, assignment{column: columnEmail, value: *p.Email})
	}
	if p.PlaceOfBirth != nil {
		set = append(set, assignment{column: columnPlaceOfBirth, value: *p.PlaceOfBirth})
	}
	return set
}

// setClause renders assignments as "a = ?, b = ?" with matching arguments.
func setClause(set []assignment) (string, []any) {
	parts := make([]string, 0, len(set))
	args := make([]any, 0, len(set))
	for _, a := range set {
		parts = append(parts, a.column+" = ?")
		args = append(args, a.value)
	}
	return strings.Join(parts, ", "), args
}

// filterClause ANDs together an equality condition per supplied filter field.
// It returns an empty string when the filter selects everything.
func filterClause(f user.Filter) (string, []any) {
	var conds []string
	var args []any
	if f.Name != nil {
		conds = append(conds, columnName+" = ?")
		args = append(args, *f.Name)
	}
	if f.Email != nil {
		conds = append(conds, columnEmail+" = ?")
		args = append(args, *f.Email)
	}
	return strings.Join(conds, " AND "), args
}
