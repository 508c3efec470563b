package fermion

import (
	"strconv"
	"strings"
)

const (
	DirNone Dir = 0
	DirAsc  Dir = 1
	DirDesc Dir = 2
)

// Short for "direction". Enum for ordering direction: none, "ASC", "DESC".
type Dir byte

// Implement `fmt.Stringer`, returning the SQL keyword.
func (self Dir) String() string {
	switch self {
	case DirAsc:
		return `ASC`
	case DirDesc:
		return `DESC`
	default:
		return ``
	}
}

/*
Parses a direction from its keyword, case-insensitively. Empty input is
`DirNone`.
*/
func ParseDir(src string) (Dir, error) {
	switch strings.ToUpper(strings.TrimSpace(src)) {
	case ``:
		return DirNone, nil
	case DirAsc.String():
		return DirAsc, nil
	case DirDesc.String():
		return DirDesc, nil
	default:
		return DirNone, ErrInvalidInput.while(`parsing ordering direction`).because(
			errf(`unrecognized direction %q`, src),
		)
	}
}

// Output column with an optional alias. Used for `Table.SelectColumns`.
type Column struct {
	Name  string
	Alias string
}

// Aggregate functions supported by `Select`.
const (
	FuncMax   = `MAX`
	FuncMin   = `MIN`
	FuncCount = `COUNT`
	FuncAvg   = `AVG`
	FuncSum   = `SUM`
)

/*
SELECT statement builder. Obtain via `Table.Select` or `Table.SelectColumns`.
Rendered in this fixed order:

	SELECT [DISTINCT] <cols> FROM `<table>`
	<joins>
	GROUP BY <cols>
	WHERE <predicates>
	ORDER BY <cols> <dir> | ORDER BY RAND()
	LIMIT <start>, <offset>

Empty segments are omitted. When no columns were added, selects "<table>.*".
*/
type Select struct {
	Joins[*Select]
	Filter[*Select]

	table    string
	reg      Registry
	columns  []string
	distinct bool
	groups   []string
	orders   []string
	dir      Dir
	rand     bool
	limited  bool
	start    int
	offset   int
}

func newSelect(table string) *Select {
	out := &Select{table: table}
	out.Joins = makeJoins(out, table)
	out.Filter = makeFilter(out, table, &out.reg)
	return out
}

/*
Appends an output column, qualified with the table name unless already dotted.
"*" selects every column of the table.
*/
func (self *Select) Get(column string) *Select { return self.GetAs(column, ``) }

// Appends an output column with an alias: "<table>.<column> AS <alias>".
func (self *Select) GetAs(column, alias string) *Select {
	return self.addColumn(qualify(self.table, column), alias)
}

// Appends "MAX(<column>)".
func (self *Select) Max(column string) *Select { return self.Func(FuncMax, column, ``) }

// Appends "MAX(<column>) AS <alias>".
func (self *Select) MaxAs(column, alias string) *Select { return self.Func(FuncMax, column, alias) }

func (self *Select) Min(column string) *Select          { return self.Func(FuncMin, column, ``) }
func (self *Select) MinAs(column, alias string) *Select { return self.Func(FuncMin, column, alias) }

func (self *Select) Count(column string) *Select { return self.Func(FuncCount, column, ``) }

func (self *Select) CountAs(column, alias string) *Select {
	return self.Func(FuncCount, column, alias)
}

func (self *Select) Avg(column string) *Select          { return self.Func(FuncAvg, column, ``) }
func (self *Select) AvgAs(column, alias string) *Select { return self.Func(FuncAvg, column, alias) }
func (self *Select) Sum(column string) *Select          { return self.Func(FuncSum, column, ``) }
func (self *Select) SumAs(column, alias string) *Select { return self.Func(FuncSum, column, alias) }

/*
Appends "<FUNC>(<column>)" with an optional alias. The function name is
uppercased, and the column is qualified like any other.
*/
func (self *Select) Func(name, column, alias string) *Select {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == `` {
		self.Filter.errs = append(self.Filter.errs, ErrInvalidInput.while(`adding aggregate column`).because(
			errf(`empty function name for column %q`, column),
		))
	}
	return self.addColumn(name+`(`+qualify(self.table, column)+`)`, alias)
}

// Enables "SELECT DISTINCT".
func (self *Select) Distinct() *Select {
	self.distinct = true
	return self
}

/*
Appends columns to GROUP BY. Each argument may be a single column or a
comma-delimited list.
*/
func (self *Select) GroupBy(columns ...string) *Select {
	self.groups = append(self.groups, qualifyAll(self.table, splitLists(columns))...)
	return self
}

/*
Appends columns to ORDER BY and sets the direction. Each argument may be a
single column or a comma-delimited list. The direction of the latest call
applies to every column. Overridden by `.Rand`.
*/
func (self *Select) OrderBy(dir Dir, columns ...string) *Select {
	self.orders = append(self.orders, qualifyAll(self.table, splitLists(columns))...)
	self.dir = dir
	return self
}

// Shortcut for `.OrderBy(DirAsc, columns...)`.
func (self *Select) Asc(columns ...string) *Select { return self.OrderBy(DirAsc, columns...) }

// Shortcut for `.OrderBy(DirDesc, columns...)`.
func (self *Select) Desc(columns ...string) *Select { return self.OrderBy(DirDesc, columns...) }

/*
Switches to "ORDER BY RAND()". Once set, explicit ordering columns are
ignored, regardless of call order.
*/
func (self *Select) Rand() *Select {
	self.rand = true
	return self
}

// Renders "LIMIT <start>, <offset>". Later calls replace earlier ones.
func (self *Select) Limit(start, offset int) *Select {
	self.limited = true
	self.start = start
	self.offset = offset
	return self
}

// Returns the rendered output columns, without the "<table>.*" default.
func (self *Select) Columns() []string {
	if len(self.columns) == 0 {
		return nil
	}
	out := make([]string, len(self.columns))
	copy(out, self.columns)
	return out
}

// Implement `Statement`.
func (self *Select) SQL() string {
	buf := makeBui(128)
	buf.Str(`SELECT`)
	if self.distinct {
		buf.Str(`DISTINCT`)
	}

	if len(self.columns) == 0 {
		buf.Str(qualify(self.table, starColumn))
	} else {
		buf.Comma(self.columns)
	}

	buf.Str(`FROM`)
	buf.Str("`" + self.table + "`")

	if text, ok := self.joinStatements(); ok {
		buf.Str(text)
	}

	if len(self.groups) > 0 {
		buf.Str(`GROUP BY`)
		buf.Comma(self.groups)
	}

	if text, ok := self.whereStatements(); ok {
		buf.Str(text)
	}

	if self.rand {
		buf.Str(`ORDER BY RAND()`)
	} else if len(self.orders) > 0 {
		buf.Str(`ORDER BY`)
		buf.Comma(self.orders)
		buf.Str(self.dir.String())
	}

	if self.limited {
		buf.Str(`LIMIT`)
		buf.Str(strconv.Itoa(self.start) + listDelim)
		buf.Int(self.offset)
	}

	return buf.String()
}

// Implement `Statement`.
func (self *Select) Values() Placeholders { return self.reg.Values() }

// Implement `Statement`.
func (self *Select) Err() error {
	return joinErrs([]error{tableErr(self.table), self.reg.Err()}, self.filterErr())
}

// Shortcut for `fermion.Build(self)`.
func (self *Select) Build() (string, Placeholders, error) { return Build(self) }

// Implement `fmt.Stringer`. Same as `.SQL`.
func (self *Select) String() string { return self.SQL() }

func (self *Select) addColumn(expr, alias string) *Select {
	alias = strings.TrimSpace(alias)
	if alias != `` {
		expr += ` AS ` + alias
	}
	self.columns = append(self.columns, expr)
	return self
}
