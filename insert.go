package fermion

import "strings"

/*
INSERT statement builder. Obtain via `Table.Insert`. Values are registered as
placeholders when the builder is constructed, in the order of the provided
`Data`, which makes `.SQL` idempotent:

	INSERT INTO users (users.email, users.name) VALUES(:v0, :v1)

Bare column keys are qualified with the table name. Dotted keys are used in
the column list as supplied, while their values are still placeheld normally.
*/
type Insert struct {
	table   string
	reg     Registry
	columns []string
	params  []string
	errs    []error
}

func newInsert(table string, data Data) *Insert {
	out := &Insert{table: table}

	if len(data) == 0 {
		out.errs = append(out.errs, ErrInvalidInput.while(`building INSERT`).because(
			errf(`no data to insert into %q`, table),
		))
	}

	seen := make(map[string]struct{}, len(data))

	for _, pair := range data {
		col := strings.TrimSpace(pair.Column)
		if col == `` {
			out.errs = append(out.errs, ErrInvalidInput.while(`building INSERT`).because(
				errf(`empty column name`),
			))
			continue
		}

		col = qualify(table, col)
		if _, ok := seen[col]; ok {
			out.errs = append(out.errs, ErrInvalidInput.while(`building INSERT`).because(
				errf(`duplicate column %q`, col),
			))
			continue
		}
		seen[col] = struct{}{}

		out.columns = append(out.columns, col)
		out.params = append(out.params, out.reg.Register(pair.Value))
	}

	return out
}

// Returns the rendered column list.
func (self *Insert) Columns() []string {
	if len(self.columns) == 0 {
		return nil
	}
	out := make([]string, len(self.columns))
	copy(out, self.columns)
	return out
}

// Implement `Statement`.
func (self *Insert) SQL() string {
	buf := makeBui(64)
	buf.Str(`INSERT INTO`)
	buf.Str(self.table)
	buf.Str(`(`)
	buf.Comma(self.columns)
	buf.Str(`)`)
	buf.Str(`VALUES(`)
	buf.Comma(self.params)
	buf.Str(`)`)
	return buf.String()
}

// Implement `Statement`.
func (self *Insert) Values() Placeholders { return self.reg.Values() }

// Implement `Statement`.
func (self *Insert) Err() error {
	return joinErrs([]error{tableErr(self.table), self.reg.Err()}, self.errs)
}

// Shortcut for `fermion.Build(self)`.
func (self *Insert) Build() (string, Placeholders, error) { return Build(self) }

// Implement `fmt.Stringer`. Same as `.SQL`.
func (self *Insert) String() string { return self.SQL() }
