package repository

import (
	"fmt"
	"strings"
)

// queryArgs collects positional parameters while a statement is assembled.
type queryArgs struct {
	values []any
}

// add appends v and returns its placeholder.
func (q *queryArgs) add(v any) string {
	q.values = append(q.values, v)
	return fmt.Sprintf("$%d", len(q.values))
}

// containsPattern turns free text into an ILIKE pattern that matches it
// literally anywhere in the column.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// afterKey renders the keyset predicate for rows ordered by
// (keyExpr <dir>, created_at DESC, id DESC) that come strictly after the
// cursor row. An empty keyExpr means the ordering starts at created_at.
func afterKey(keyExpr, op, keyPH, createdCol, idCol, tsPH, idPH string) string {
	recent := fmt.Sprintf("(%s < %s OR (%s = %s AND %s < %s))", createdCol, tsPH, createdCol, tsPH, idCol, idPH)
	if keyExpr == "" {
		return recent
	}
	return fmt.Sprintf("(%s %s %s OR (%s = %s AND %s))", keyExpr, op, keyPH, keyExpr, keyPH, recent)
}
