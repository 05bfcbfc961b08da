package postgres

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// uuidArray renders ids as a PostgreSQL array literal. It is bound as a single
// text parameter and cast with $n::uuid[] in the query.
func uuidArray(ids []uuid.UUID) string {
	return "{" + strings.Join(lo.Map(ids, func(id uuid.UUID, _ int) string {
		return id.String()
	}), ",") + "}"
}

// valuesPlaceholders builds "($1, $2), ($3, $4)" for rows rows of width
// columns, starting at parameter offset+1.
func valuesPlaceholders(rows, width, offset int) string {
	var b strings.Builder
	n := offset
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := 0; c < width; c++ {
			if c > 0 {
				b.WriteString(", ")
			}
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		}
		b.WriteByte(')')
	}
	return b.String()
}
