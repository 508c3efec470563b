package fermion

import "strings"

// Enum for the supported join kinds.
type JoinKind byte

const (
	JoinInner     JoinKind = 0
	JoinLeft      JoinKind = 1
	JoinRight     JoinKind = 2
	JoinFullOuter JoinKind = 3
)

// Implement `fmt.Stringer`, returning the SQL keyword(s) preceding "JOIN".
func (self JoinKind) String() string {
	switch self {
	case JoinLeft:
		return `LEFT`
	case JoinRight:
		return `RIGHT`
	case JoinFullOuter:
		return `FULL OUTER`
	default:
		return `INNER`
	}
}

// Single join clause. Columns are stored as provided and qualified when
// rendering.
type JoinClause struct {
	Kind          JoinKind
	ForeignTable  string
	LocalColumn   string
	ForeignColumn string
}

/*
Renders the clause for the given local table:

	INNER JOIN orders ON users.id = orders.user_id
*/
func (self JoinClause) Render(table string) string {
	var buf strings.Builder
	buf.WriteString(self.Kind.String())
	buf.WriteString(` JOIN `)
	buf.WriteString(self.ForeignTable)
	buf.WriteString(` ON `)
	buf.WriteString(qualify(table, self.LocalColumn))
	buf.WriteString(` = `)
	buf.WriteString(qualify(self.ForeignTable, self.ForeignColumn))
	return buf.String()
}

/*
Accumulates join clauses in call order. Meant to be embedded into statement
builders; every mutating method returns the owning builder, which keeps call
chains typed:

	fermion.New(`users`).Select(`*`).LeftJoin(`orders`, `id`, `user_id`).Equal(`id`, 10)
*/
type Joins[Owner any] struct {
	owner Owner
	table string
	list  []JoinClause
}

func makeJoins[Owner any](owner Owner, table string) Joins[Owner] {
	return Joins[Owner]{owner: owner, table: table}
}

// Appends "INNER JOIN <table> ON <local> = <table>.<foreign>".
func (self *Joins[Owner]) InnerJoin(table, local, foreign string) Owner {
	return self.join(JoinInner, table, local, foreign)
}

// Appends "LEFT JOIN <table> ON <local> = <table>.<foreign>".
func (self *Joins[Owner]) LeftJoin(table, local, foreign string) Owner {
	return self.join(JoinLeft, table, local, foreign)
}

// Appends "RIGHT JOIN <table> ON <local> = <table>.<foreign>".
func (self *Joins[Owner]) RightJoin(table, local, foreign string) Owner {
	return self.join(JoinRight, table, local, foreign)
}

// Appends "FULL OUTER JOIN <table> ON <local> = <table>.<foreign>".
func (self *Joins[Owner]) OuterJoin(table, local, foreign string) Owner {
	return self.join(JoinFullOuter, table, local, foreign)
}

func (self *Joins[Owner]) join(kind JoinKind, table, local, foreign string) Owner {
	self.list = append(self.list, JoinClause{
		Kind:          kind,
		ForeignTable:  table,
		LocalColumn:   local,
		ForeignColumn: foreign,
	})
	return self.owner
}

// Returns a copy of the accumulated clauses.
func (self *Joins[Owner]) JoinClauses() []JoinClause {
	if len(self.list) == 0 {
		return nil
	}
	out := make([]JoinClause, len(self.list))
	copy(out, self.list)
	return out
}

/*
Renders all clauses, space-separated, in call order. The second return value
is false when there are no joins, in which case the segment must be omitted.
*/
func (self *Joins[Owner]) joinStatements() (string, bool) {
	if len(self.list) == 0 {
		return ``, false
	}
	parts := make([]string, 0, len(self.list))
	for _, val := range self.list {
		parts = append(parts, val.Render(self.table))
	}
	return strings.Join(parts, ` `), true
}
