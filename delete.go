package fermion

/*
DELETE statement builder. Obtain via `Table.Delete`. Has no state of its own
besides joins and predicates:

	DELETE FROM <table> <joins> WHERE <predicates>

A DELETE without predicates affects every row; this is not reported as an
error.
*/
type Delete struct {
	Joins[*Delete]
	Filter[*Delete]

	table string
	reg   Registry
}

func newDelete(table string) *Delete {
	out := &Delete{table: table}
	out.Joins = makeJoins(out, table)
	out.Filter = makeFilter(out, table, &out.reg)
	return out
}

// Implement `Statement`.
func (self *Delete) SQL() string {
	buf := makeBui(64)
	buf.Str(`DELETE FROM`)
	buf.Str(self.table)

	if text, ok := self.joinStatements(); ok {
		buf.Str(text)
	}
	if text, ok := self.whereStatements(); ok {
		buf.Str(text)
	}
	return buf.String()
}

// Implement `Statement`.
func (self *Delete) Values() Placeholders { return self.reg.Values() }

// Implement `Statement`.
func (self *Delete) Err() error {
	return joinErrs([]error{tableErr(self.table), self.reg.Err()}, self.filterErr())
}

// Shortcut for `fermion.Build(self)`.
func (self *Delete) Build() (string, Placeholders, error) { return Build(self) }

// Implement `fmt.Stringer`. Same as `.SQL`.
func (self *Delete) String() string { return self.SQL() }
