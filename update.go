package fermion

import "strings"

/*
UPDATE statement builder. Obtain via `Table.Update`. Rendered as:

	UPDATE <table> SET <col> = <param>[, ...] <joins> WHERE <predicates>

Setting the same column twice keeps its original position and uses the latest
value. The earlier value stays registered, so `.Values` may contain
placeholders that the text no longer references.
*/
type Update struct {
	Joins[*Update]
	Filter[*Update]

	table   string
	reg     Registry
	assigns []assignment
	index   map[string]int
	errs    []error
}

type assignment struct {
	column string
	param  string
}

func (self assignment) String() string { return self.column + ` = ` + self.param }

func newUpdate(table string, data Data) *Update {
	out := &Update{table: table}
	out.Joins = makeJoins(out, table)
	out.Filter = makeFilter(out, table, &out.reg)
	for _, pair := range data {
		out.Set(pair.Column, pair.Value)
	}
	return out
}

/*
Assigns a value to a column. The column is qualified with the table name
unless already dotted, and the value is registered as a placeholder.
*/
func (self *Update) Set(column string, value any) *Update {
	if strings.TrimSpace(column) == `` {
		self.errs = append(self.errs, ErrInvalidInput.while(`building UPDATE`).because(
			errf(`empty column name`),
		))
		return self
	}

	col := qualify(self.table, column)
	param := self.reg.Register(value)

	if ind, ok := self.index[col]; ok {
		self.assigns[ind].param = param
		return self
	}

	if self.index == nil {
		self.index = map[string]int{}
	}
	self.index[col] = len(self.assigns)
	self.assigns = append(self.assigns, assignment{col, param})
	return self
}

// Shortcut for calling `.Set` for each pair in order.
func (self *Update) SetData(data Data) *Update {
	for _, pair := range data {
		self.Set(pair.Column, pair.Value)
	}
	return self
}

// Returns the qualified columns being assigned, in order.
func (self *Update) Columns() []string {
	if len(self.assigns) == 0 {
		return nil
	}
	out := make([]string, 0, len(self.assigns))
	for _, val := range self.assigns {
		out = append(out, val.column)
	}
	return out
}

// Implement `Statement`.
func (self *Update) SQL() string {
	buf := makeBui(128)
	buf.Str(`UPDATE`)
	buf.Str(self.table)
	buf.Str(`SET`)

	parts := make([]string, 0, len(self.assigns))
	for _, val := range self.assigns {
		parts = append(parts, val.String())
	}
	buf.Comma(parts)

	if text, ok := self.joinStatements(); ok {
		buf.Str(text)
	}
	if text, ok := self.whereStatements(); ok {
		buf.Str(text)
	}
	return buf.String()
}

// Implement `Statement`.
func (self *Update) Values() Placeholders { return self.reg.Values() }

// Implement `Statement`.
func (self *Update) Err() error {
	errs := []error{tableErr(self.table), self.reg.Err()}
	if len(self.assigns) == 0 {
		errs = append(errs, ErrInvalidInput.while(`building UPDATE`).because(
			errf(`no columns to set in %q`, self.table),
		))
	}
	return joinErrs(errs, self.errs, self.filterErr())
}

// Shortcut for `fermion.Build(self)`.
func (self *Update) Build() (string, Placeholders, error) { return Build(self) }

// Implement `fmt.Stringer`. Same as `.SQL`.
func (self *Update) String() string { return self.SQL() }
