/*
Package document decodes YAML statement documents and compiles them into
fermion statements. A document is a list of statements:

	statements:
	  - table: users
	    kind: select
	    columns: [id, {name: name, alias: n}]
	    joins:
	      - {kind: left, table: orders, local: id, foreign: user_id}
	    where:
	      - {field: active, op: "=", value: true}
	      - "("
	      - {field: name, op: starts_with, value: K}
	      - or
	      - {field: orders.total, op: ">", value: 100}
	      - ")"
	    order: [{dir: desc, columns: [name]}]
	    limit: {start: 0, offset: 10}

	  - table: users
	    kind: insert
	    data: {email: x@y.com, name: Kim}

Data mappings keep the order in which they appear in the document.
*/
package document

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/mitranim/fermion"
)

// Statement kinds.
const (
	KindSelect   = `select`
	KindInsert   = `insert`
	KindUpdate   = `update`
	KindDelete   = `delete`
	KindTruncate = `truncate`
	KindDrop     = `drop`
)

type Document struct {
	Statements []Statement `yaml:"statements"`
}

type Statement struct {
	Name       string      `yaml:"name"`
	Table      string      `yaml:"table"`
	Kind       string      `yaml:"kind"`
	Columns    []Column    `yaml:"columns"`
	Aggregates []Aggregate `yaml:"aggregates"`
	Distinct   bool        `yaml:"distinct"`
	Joins      []Join      `yaml:"joins"`
	Where      []Where     `yaml:"where"`
	Group      []string    `yaml:"group"`
	Order      []Order     `yaml:"order"`
	Rand       bool        `yaml:"rand"`
	Limit      *Limit      `yaml:"limit"`
	Data       Data        `yaml:"data"`
}

// Column is either a plain scalar name, or a mapping with a name and alias.
type Column struct {
	Name  string `yaml:"name"`
	Alias string `yaml:"alias"`
}

func (self *Column) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		self.Name = node.Value
		return nil
	}
	type column Column
	return node.Decode((*column)(self))
}

type Aggregate struct {
	Func   string `yaml:"func"`
	Column string `yaml:"column"`
	Alias  string `yaml:"alias"`
}

type Join struct {
	Kind    string `yaml:"kind"`
	Table   string `yaml:"table"`
	Local   string `yaml:"local"`
	Foreign string `yaml:"foreign"`
}

/*
Where is one element of a WHERE token stream. A scalar item is a bare token:
"and", "or", "(" or ")". A mapping item is a predicate.
*/
type Where struct {
	Token   string `yaml:"-"`
	Field   string `yaml:"field"`
	Op      string `yaml:"op"`
	Value   any    `yaml:"value"`
	In      []any  `yaml:"in"`
	Between []int  `yaml:"between"`
	Null    *bool  `yaml:"null"`
	Raw     string `yaml:"raw"`
	Or      bool   `yaml:"or"`
}

func (self *Where) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		self.Token = node.Value
		return nil
	}
	type where Where
	return nullKeys(node).Decode((*where)(self))
}

/*
nullKeys returns a copy of a mapping node where keys that YAML resolves to the
null scalar, such as an unquoted `null`, become the string "null".
*/
func nullKeys(node *yaml.Node) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return node
	}

	out := *node
	out.Content = make([]*yaml.Node, len(node.Content))
	copy(out.Content, node.Content)

	for ind := 0; ind < len(out.Content); ind += 2 {
		key := out.Content[ind]
		if key.Kind == yaml.ScalarNode && key.ShortTag() == `!!null` {
			str := *key
			str.Tag = `!!str`
			str.Value = `null`
			out.Content[ind] = &str
		}
	}
	return &out
}

type Order struct {
	Dir     string   `yaml:"dir"`
	Columns []string `yaml:"columns"`
}

type Limit struct {
	Start  int `yaml:"start"`
	Offset int `yaml:"offset"`
}

// Data is an ordered column-value mapping.
type Data fermion.Data

func (self *Data) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: data must be a mapping", node.Line)
	}

	out := make(Data, 0, len(node.Content)/2)
	for ind := 0; ind+1 < len(node.Content); ind += 2 {
		var val any
		if err := node.Content[ind+1].Decode(&val); err != nil {
			return err
		}
		out = append(out, fermion.Pair{Column: node.Content[ind].Value, Value: val})
	}
	*self = out
	return nil
}

// Parse decodes a document from YAML.
func Parse(src []byte) (Document, error) {
	var out Document
	if err := yaml.Unmarshal(src, &out); err != nil {
		return out, fmt.Errorf("failed to parse document: %w", err)
	}
	return out, nil
}

// ReadFile reads and decodes a document from the given filesystem.
func ReadFile(fs afero.Fs, path string) (Document, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(src)
}

// Compile compiles every statement, stopping at the first failure.
func (self Document) Compile() ([]fermion.Statement, error) {
	out := make([]fermion.Statement, 0, len(self.Statements))
	for ind, stmt := range self.Statements {
		val, err := stmt.Compile()
		if err != nil {
			return nil, fmt.Errorf("statement %d (%s): %w", ind, stmt.Label(), err)
		}
		out = append(out, val)
	}
	return out, nil
}

// Label returns the name of the statement, or "<kind> <table>".
func (self Statement) Label() string {
	if self.Name != `` {
		return self.Name
	}
	return self.Kind + ` ` + self.Table
}

/*
Compile builds the fermion statement. Fields that don't apply to the kind,
such as joins on an INSERT, are errors. Errors reported by the statement's own
`.Err` are not checked here.
*/
func (self Statement) Compile() (fermion.Statement, error) {
	if strings.TrimSpace(self.Table) == `` {
		return nil, fmt.Errorf("missing table")
	}

	tab := fermion.New(self.Table)

	switch strings.ToLower(self.Kind) {
	case KindSelect:
		return self.compileSelect(tab)

	case KindInsert:
		if err := self.only(`data`); err != nil {
			return nil, err
		}
		return tab.Insert(fermion.Data(self.Data)), nil

	case KindUpdate:
		if err := self.only(`data`, `joins`, `where`); err != nil {
			return nil, err
		}
		out := tab.Update(fermion.Data(self.Data))
		if err := applyJoins(&out.Joins, self.Joins); err != nil {
			return nil, err
		}
		return out, applyWhere(&out.Filter, self.Where)

	case KindDelete:
		if err := self.only(`joins`, `where`); err != nil {
			return nil, err
		}
		out := tab.Delete()
		if err := applyJoins(&out.Joins, self.Joins); err != nil {
			return nil, err
		}
		return out, applyWhere(&out.Filter, self.Where)

	case KindTruncate:
		if err := self.only(); err != nil {
			return nil, err
		}
		return tab.Truncate(), nil

	case KindDrop:
		if err := self.only(); err != nil {
			return nil, err
		}
		return tab.Drop(), nil

	default:
		return nil, fmt.Errorf("unknown statement kind %q", self.Kind)
	}
}

func (self Statement) compileSelect(tab fermion.Table) (fermion.Statement, error) {
	if err := self.only(`columns`, `aggregates`, `distinct`, `joins`, `where`, `group`, `order`, `rand`, `limit`); err != nil {
		return nil, err
	}

	out := tab.Select()
	for _, col := range self.Columns {
		out.GetAs(col.Name, col.Alias)
	}
	for _, agg := range self.Aggregates {
		out.Func(agg.Func, agg.Column, agg.Alias)
	}
	if self.Distinct {
		out.Distinct()
	}
	if err := applyJoins(&out.Joins, self.Joins); err != nil {
		return nil, err
	}
	if err := applyWhere(&out.Filter, self.Where); err != nil {
		return nil, err
	}
	if len(self.Group) > 0 {
		out.GroupBy(self.Group...)
	}
	for _, ord := range self.Order {
		dir, err := fermion.ParseDir(ord.Dir)
		if err != nil {
			return nil, err
		}
		out.OrderBy(dir, ord.Columns...)
	}
	if self.Rand {
		out.Rand()
	}
	if self.Limit != nil {
		out.Limit(self.Limit.Start, self.Limit.Offset)
	}
	return out, nil
}

// only reports fields that are set but not among the allowed ones.
func (self Statement) only(allowed ...string) error {
	set := map[string]bool{
		`columns`:    len(self.Columns) > 0,
		`aggregates`: len(self.Aggregates) > 0,
		`distinct`:   self.Distinct,
		`joins`:      len(self.Joins) > 0,
		`where`:      len(self.Where) > 0,
		`group`:      len(self.Group) > 0,
		`order`:      len(self.Order) > 0,
		`rand`:       self.Rand,
		`limit`:      self.Limit != nil,
		`data`:       len(self.Data) > 0,
	}
	for _, key := range allowed {
		delete(set, key)
	}

	var bad []string
	for _, key := range [...]string{`columns`, `aggregates`, `distinct`, `joins`, `where`, `group`, `order`, `rand`, `limit`, `data`} {
		if set[key] {
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("fields not supported by %q statements: %s", self.Kind, strings.Join(bad, `, `))
	}
	return nil
}
