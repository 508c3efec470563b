package fermion

import (
	"database/sql"
	"strings"

	"github.com/mitranim/sqlp"
)

/*
Enum for the parameter syntax expected by a database driver. The text produced
by statement builders always uses named parameters such as ":v0"; `Rebind`
converts it to the given style.
*/
type BindStyle byte

const (
	// ":v0", with args passed as `sql.NamedArg`.
	BindNamed BindStyle = 0

	// "?", used by MySQL and SQLite drivers.
	BindQuestion BindStyle = 1

	// "$1", used by Postgres drivers.
	BindDollar BindStyle = 2
)

// Implement `fmt.Stringer`. The output is accepted by `ParseBindStyle`.
func (self BindStyle) String() string {
	switch self {
	case BindQuestion:
		return `question`
	case BindDollar:
		return `dollar`
	default:
		return `named`
	}
}

// Parses a bind style from one of: "named", "question", "dollar".
func ParseBindStyle(src string) (BindStyle, error) {
	switch strings.ToLower(strings.TrimSpace(src)) {
	case BindNamed.String():
		return BindNamed, nil
	case BindQuestion.String():
		return BindQuestion, nil
	case BindDollar.String():
		return BindDollar, nil
	default:
		return BindNamed, ErrInvalidInput.while(`parsing bind style`).because(
			errf(`unrecognized bind style %q; expected one of: named, question, dollar`, src),
		)
	}
}

/*
Renders the statement and converts its parameters to the given style, returning
the text and the arguments to pass to `database/sql`:

	text, args, err := fermion.Rebind(stmt, fermion.BindQuestion)
	if err != nil {
		return err
	}
	rows, err := db.QueryContext(ctx, text, args...)

Parameters inside quoted strings and comments are left untouched. Only the
placeholders referenced by the text become arguments. With `BindQuestion`, a
placeholder referenced twice produces two arguments; with `BindDollar` and
`BindNamed`, one.

If the statement reports an error, that error is returned before any
conversion.
*/
func Rebind(stmt Statement, style BindStyle) (string, []any, error) {
	if stmt == nil {
		return ``, nil, ErrInvalidInput.while(`rebinding statement`).because(errf(`nil statement`))
	}
	if err := stmt.Err(); err != nil {
		return ``, nil, err
	}
	return RebindText(stmt.SQL(), stmt.Values(), style)
}

/*
Same as `Rebind`, but takes arbitrary text with named parameters and the
values to bind to them. A parameter without a value is `ErrMissingArgument`.
*/
func RebindText(src string, vals Placeholders, style BindStyle) (text string, args []any, err error) {
	defer rec(&err)

	tokenizer := sqlp.Tokenizer{Source: src}
	buf := make([]byte, 0, len(src))
	namedToOrd := map[sqlp.NodeNamedParam]sqlp.NodeOrdinalParam{}

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeNamedParam:
			val, ok := vals.Get(string(node))
			if !ok {
				panic(ErrMissingArgument.while(`rebinding statement`).because(
					errf(`missing named argument %q`, string(node)),
				))
			}

			switch style {
			case BindQuestion:
				args = append(args, val.Interface())
				buf = append(buf, '?')

			case BindDollar:
				ord, ok := namedToOrd[node]
				if !ok {
					args = append(args, val.Interface())
					ord = sqlp.NodeOrdinalParam(len(args))
					namedToOrd[node] = ord
				}
				ord.Append(&buf)

			default:
				if _, ok := namedToOrd[node]; !ok {
					args = append(args, sql.Named(string(node), val.Interface()))
					namedToOrd[node] = sqlp.NodeOrdinalParam(len(args))
				}
				node.Append(&buf)
			}

		default:
			node.Append(&buf)
		}
	}

	return string(buf), args, nil
}
