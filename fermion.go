package fermion

import "strings"

const version = `1.0.0`

// Returns the library name and version, such as "Fermion version 1.0.0".
func Version() string { return `Fermion version ` + version }

/*
Table-bound entry point. Each method returns a new, independent builder for
one statement kind:

	users := fermion.New(`users`)
	text, vals, err := users.Select(`id, name`).Equal(`id`, 10).Build()
*/
type Table string

// Returns the table-bound facade, trimming surrounding whitespace.
func New(name string) Table { return Table(strings.TrimSpace(name)) }

// Returns the table name.
func (self Table) Name() string { return string(self) }

/*
Starts a SELECT. Each argument may be a single column, a comma-delimited list
such as "id, name", or "*". Without arguments, selects "<table>.*".
*/
func (self Table) Select(columns ...string) *Select {
	out := newSelect(self.Name())
	for _, col := range splitLists(columns) {
		out.Get(col)
	}
	return out
}

// Starts a SELECT with aliased output columns.
func (self Table) SelectColumns(columns ...Column) *Select {
	out := newSelect(self.Name())
	for _, col := range columns {
		out.GetAs(col.Name, col.Alias)
	}
	return out
}

// Starts an UPDATE, assigning the given data in order. The data may be empty.
func (self Table) Update(data Data) *Update { return newUpdate(self.Name(), data) }

// Starts a DELETE.
func (self Table) Delete() *Delete { return newDelete(self.Name()) }

// Starts an INSERT of a single row.
func (self Table) Insert(data Data) *Insert { return newInsert(self.Name(), data) }

func (self Table) Truncate() *Truncate { return &Truncate{self.Name()} }
func (self Table) Drop() *Drop         { return &Drop{self.Name()} }
