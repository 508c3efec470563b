package fermion

import "errors"

/*
Common interface of every statement builder. `.SQL` renders the text on each
call and is a pure function of the accumulated state. `.Values` returns the
placeholders referenced by the text, in registration order. `.Err` reports
problems detected in the accumulated state, such as unsupported values or
unbalanced groups; the text is still rendered in that case.
*/
type Statement interface {
	SQL() string
	Values() Placeholders
	Err() error
}

/*
Shortcut for calling `.SQL`, `.Values` and `.Err` at once. On error, the text
and values are still returned, for debugging.
*/
func Build(stmt Statement) (string, Placeholders, error) {
	if stmt == nil {
		return ``, nil, ErrInvalidInput.while(`building statement`).because(errf(`nil statement`))
	}
	return stmt.SQL(), stmt.Values(), stmt.Err()
}

func joinErrs(src ...[]error) error {
	var out []error
	for _, errs := range src {
		out = append(out, errs...)
	}
	return errors.Join(out...)
}

/*
Renders "TRUNCATE TABLE <table>". Has no filters, joins or values.
*/
type Truncate struct{ table string }

func (self *Truncate) SQL() string          { return `TRUNCATE TABLE ` + self.table }
func (self *Truncate) Values() Placeholders { return nil }
func (self *Truncate) Err() error           { return tableErr(self.table) }
func (self *Truncate) String() string       { return self.SQL() }

func (self *Truncate) Build() (string, Placeholders, error) { return Build(self) }

/*
Renders "DROP TABLE <table>". Has no filters, joins or values.
*/
type Drop struct{ table string }

func (self *Drop) SQL() string          { return `DROP TABLE ` + self.table }
func (self *Drop) Values() Placeholders { return nil }
func (self *Drop) Err() error           { return tableErr(self.table) }
func (self *Drop) String() string       { return self.SQL() }

func (self *Drop) Build() (string, Placeholders, error) { return Build(self) }

func tableErr(table string) error {
	if table == `` {
		return ErrInvalidInput.while(`building statement`).because(errf(`empty table name`))
	}
	return nil
}
