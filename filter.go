package fermion

import (
	r "reflect"
	"strings"
)

// Logical glue joining two predicates.
type Glue byte

const (
	GlueNone Glue = 0
	GlueAnd  Glue = 1
	GlueOr   Glue = 2
)

// Implement `fmt.Stringer`, returning the SQL keyword.
func (self Glue) String() string {
	switch self {
	case GlueAnd:
		return `AND`
	case GlueOr:
		return `OR`
	default:
		return ``
	}
}

// Returns self, or the fallback if self is `GlueNone`.
func (self Glue) Or(fallback Glue) Glue {
	if self == GlueNone {
		return fallback
	}
	return self
}

// Kind of a single element of the WHERE token stream.
type TokenKind byte

const (
	TokenCond  TokenKind = 0
	TokenGlue  TokenKind = 1
	TokenOpen  TokenKind = 2
	TokenClose TokenKind = 3
)

/*
Single element of the WHERE token stream: a predicate fragment with its own
optional leading glue, a bare glue keyword, or a group delimiter.
*/
type Token struct {
	Kind TokenKind
	Glue Glue
	Text string
}

/*
Classifies a raw fragment:

	"("                -> group open
	")"                -> group close
	"and", "OR"        -> bare glue
	"AND users.a = 1"  -> predicate "users.a = 1" with glue AND
	"users.a = 1"      -> predicate "users.a = 1" without glue

Glue keywords are matched case-insensitively.
*/
func ParseToken(src string) Token {
	text := strings.TrimSpace(src)

	switch {
	case text == `(`:
		return Token{Kind: TokenOpen}
	case text == `)`:
		return Token{Kind: TokenClose}
	case strings.EqualFold(text, GlueAnd.String()):
		return Token{Kind: TokenGlue, Glue: GlueAnd}
	case strings.EqualFold(text, GlueOr.String()):
		return Token{Kind: TokenGlue, Glue: GlueOr}
	}

	glue, rest := cutGlue(text)
	return Token{Kind: TokenCond, Glue: glue, Text: tidyParens(rest)}
}

/*
Tightens parentheses inside a condition: "( a = 1 OR b = 2 )" becomes
"(a = 1 OR b = 2)", and a glue keyword right after "(" is dropped.
*/
func tidyParens(text string) string {
	if !strings.ContainsAny(text, `()`) {
		return text
	}

	for _, pair := range [...][2]string{{`( `, `(`}, {` )`, `)`}} {
		for strings.Contains(text, pair[0]) {
			text = strings.ReplaceAll(text, pair[0], pair[1])
		}
	}

	var buf strings.Builder
	buf.Grow(len(text))
	for {
		ind := strings.IndexByte(text, '(')
		if ind < 0 {
			buf.WriteString(text)
			return buf.String()
		}
		buf.WriteString(text[:ind+1])
		_, text = cutGlue(text[ind+1:])
	}
}

func cutGlue(text string) (Glue, string) {
	for _, glue := range [...]Glue{GlueAnd, GlueOr} {
		prefix := glue.String() + ` `
		if len(text) > len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			return glue, strings.TrimSpace(text[len(prefix):])
		}
	}
	return GlueNone, text
}

// Implement `fmt.Stringer`, returning the fragment as it was appended.
func (self Token) String() string {
	switch self.Kind {
	case TokenOpen:
		return `(`
	case TokenClose:
		return `)`
	case TokenGlue:
		return self.Glue.String()
	default:
		if self.Glue == GlueNone {
			return self.Text
		}
		return self.Glue.String() + ` ` + self.Text
	}
}

/*
Accumulates WHERE predicates as an append-only token stream. Meant to be
embedded into statement builders; every method returns the owning builder.
Field names are qualified with the builder's table unless already dotted, and
literal values are registered in the builder's placeholder registry.

Methods without the "Or" prefix glue their predicate with AND, the "Or"
variants with OR. A bare `.And()` or `.Or()` overrides the glue of whatever
follows. The first predicate overall, and the first predicate inside each
group, drops its glue:

	Equal(`id`, 5).Or().Equal(`name`, `a`)
	// WHERE users.id = :v0 OR users.name = :v1

	StartGroup().Equal(`a`, 1).OrEqual(`b`, 2).EndGroup().Equal(`c`, 3)
	// WHERE (users.a = :v0 OR users.b = :v1) AND users.c = :v2

Groups are not validated while chaining. Unbalanced groups still render, and
are reported by the owning statement's `.Err()`.
*/
type Filter[Owner any] struct {
	owner  Owner
	table  string
	reg    *Registry
	tokens []Token
	errs   []error
}

func makeFilter[Owner any](owner Owner, table string, reg *Registry) Filter[Owner] {
	return Filter[Owner]{owner: owner, table: table, reg: reg}
}

/*
Appends a raw fragment, classified via `ParseToken`. This is the only
primitive mutator; every other predicate method is expressed through it.
Blank fragments are ignored. The fragment is used verbatim: any values it
contains are NOT parametrized.
*/
func (self *Filter[Owner]) Raw(fragment string) Owner {
	if strings.TrimSpace(fragment) != `` {
		self.tokens = append(self.tokens, ParseToken(fragment))
	}
	return self.owner
}

// Appends a bare OR, which glues the next predicate or group.
func (self *Filter[Owner]) Or() Owner { return self.Raw(GlueOr.String()) }

// Appends a bare AND, which glues the next predicate or group.
func (self *Filter[Owner]) And() Owner { return self.Raw(GlueAnd.String()) }

// Opens a parenthesized group.
func (self *Filter[Owner]) StartGroup() Owner { return self.Raw(`(`) }

// Closes a parenthesized group.
func (self *Filter[Owner]) EndGroup() Owner { return self.Raw(`)`) }

// Appends "<field> <operator> <placeholder>", glued with AND.
func (self *Filter[Owner]) Where(field, operator string, value any) Owner {
	return self.compare(GlueAnd, field, operator, value)
}

// Appends "<field> <operator> <placeholder>", glued with OR.
func (self *Filter[Owner]) OrWhere(field, operator string, value any) Owner {
	return self.compare(GlueOr, field, operator, value)
}

func (self *Filter[Owner]) Equal(field string, value any) Owner {
	return self.Where(field, `=`, value)
}

func (self *Filter[Owner]) OrEqual(field string, value any) Owner {
	return self.OrWhere(field, `=`, value)
}

func (self *Filter[Owner]) NotEqual(field string, value any) Owner {
	return self.Where(field, `!=`, value)
}

func (self *Filter[Owner]) OrNotEqual(field string, value any) Owner {
	return self.OrWhere(field, `!=`, value)
}

func (self *Filter[Owner]) LessThan(field string, value any) Owner {
	return self.Where(field, `<`, value)
}

func (self *Filter[Owner]) OrLessThan(field string, value any) Owner {
	return self.OrWhere(field, `<`, value)
}

func (self *Filter[Owner]) GreaterThan(field string, value any) Owner {
	return self.Where(field, `>`, value)
}

func (self *Filter[Owner]) OrGreaterThan(field string, value any) Owner {
	return self.OrWhere(field, `>`, value)
}

func (self *Filter[Owner]) LessThanEqual(field string, value any) Owner {
	return self.Where(field, `<=`, value)
}

func (self *Filter[Owner]) OrLessThanEqual(field string, value any) Owner {
	return self.OrWhere(field, `<=`, value)
}

func (self *Filter[Owner]) GreaterThanEqual(field string, value any) Owner {
	return self.Where(field, `>=`, value)
}

func (self *Filter[Owner]) OrGreaterThanEqual(field string, value any) Owner {
	return self.OrWhere(field, `>=`, value)
}

// Appends "<field> = ''" via a placeholder.
func (self *Filter[Owner]) Empty(field string) Owner { return self.Where(field, `=`, ``) }

func (self *Filter[Owner]) OrEmpty(field string) Owner { return self.OrWhere(field, `=`, ``) }

// Appends "<field> != ''" via a placeholder.
func (self *Filter[Owner]) NotEmpty(field string) Owner { return self.Where(field, `!=`, ``) }

func (self *Filter[Owner]) OrNotEmpty(field string) Owner { return self.OrWhere(field, `!=`, ``) }

func (self *Filter[Owner]) IsNull(field string) Owner {
	return self.predicate(GlueAnd, self.field(field)+` IS NULL`)
}

func (self *Filter[Owner]) OrIsNull(field string) Owner {
	return self.predicate(GlueOr, self.field(field)+` IS NULL`)
}

func (self *Filter[Owner]) NotNull(field string) Owner {
	return self.predicate(GlueAnd, self.field(field)+` IS NOT NULL`)
}

func (self *Filter[Owner]) OrNotNull(field string) Owner {
	return self.predicate(GlueOr, self.field(field)+` IS NOT NULL`)
}

func (self *Filter[Owner]) Like(field string, value any) Owner {
	return self.compare(GlueAnd, field, `LIKE`, value)
}

func (self *Filter[Owner]) OrLike(field string, value any) Owner {
	return self.compare(GlueOr, field, `LIKE`, value)
}

func (self *Filter[Owner]) NotLike(field string, value any) Owner {
	return self.compare(GlueAnd, field, `NOT LIKE`, value)
}

func (self *Filter[Owner]) OrNotLike(field string, value any) Owner {
	return self.compare(GlueOr, field, `NOT LIKE`, value)
}

// Appends "<field> LIKE '<value>%'".
func (self *Filter[Owner]) StartsWith(field string, value any) Owner {
	return self.Like(field, self.pattern(``, value, `%`))
}

func (self *Filter[Owner]) OrStartsWith(field string, value any) Owner {
	return self.OrLike(field, self.pattern(``, value, `%`))
}

func (self *Filter[Owner]) NotStartsWith(field string, value any) Owner {
	return self.NotLike(field, self.pattern(``, value, `%`))
}

func (self *Filter[Owner]) OrNotStartsWith(field string, value any) Owner {
	return self.OrNotLike(field, self.pattern(``, value, `%`))
}

// Appends "<field> LIKE '%<value>'".
func (self *Filter[Owner]) EndsWith(field string, value any) Owner {
	return self.Like(field, self.pattern(`%`, value, ``))
}

func (self *Filter[Owner]) OrEndsWith(field string, value any) Owner {
	return self.OrLike(field, self.pattern(`%`, value, ``))
}

func (self *Filter[Owner]) NotEndsWith(field string, value any) Owner {
	return self.NotLike(field, self.pattern(`%`, value, ``))
}

func (self *Filter[Owner]) OrNotEndsWith(field string, value any) Owner {
	return self.OrNotLike(field, self.pattern(`%`, value, ``))
}

// Appends "<field> LIKE '%<value>%'".
func (self *Filter[Owner]) Contain(field string, value any) Owner {
	return self.Like(field, self.pattern(`%`, value, `%`))
}

func (self *Filter[Owner]) OrContain(field string, value any) Owner {
	return self.OrLike(field, self.pattern(`%`, value, `%`))
}

func (self *Filter[Owner]) NotContain(field string, value any) Owner {
	return self.NotLike(field, self.pattern(`%`, value, `%`))
}

func (self *Filter[Owner]) OrNotContain(field string, value any) Owner {
	return self.OrNotLike(field, self.pattern(`%`, value, `%`))
}

/*
Appends "<field> IN (<placeholders>)", one placeholder per value. A single
slice or array argument is expanded into its elements:

	In(`id`, 1, 2, 3)
	In(`id`, []int{1, 2, 3})
*/
func (self *Filter[Owner]) In(field string, values ...any) Owner {
	return self.in(GlueAnd, field, values)
}

func (self *Filter[Owner]) OrIn(field string, values ...any) Owner {
	return self.in(GlueOr, field, values)
}

/*
Appends "<field> BETWEEN <min> AND <max>". The bounds are integers, which are
rendered literally rather than through placeholders.
*/
func (self *Filter[Owner]) InBetween(field string, min, max int) Owner {
	return self.between(GlueAnd, field, min, max)
}

func (self *Filter[Owner]) OrInBetween(field string, min, max int) Owner {
	return self.between(GlueOr, field, min, max)
}

// Returns a copy of the accumulated token stream.
func (self *Filter[Owner]) Tokens() []Token {
	if len(self.tokens) == 0 {
		return nil
	}
	out := make([]Token, len(self.tokens))
	copy(out, self.tokens)
	return out
}

func (self *Filter[Owner]) field(name string) string { return qualify(self.table, name) }

func (self *Filter[Owner]) predicate(glue Glue, body string) Owner {
	return self.Raw(glue.String() + ` ` + body)
}

func (self *Filter[Owner]) compare(glue Glue, field, operator string, value any) Owner {
	if strings.TrimSpace(operator) == `` {
		self.errs = append(self.errs, ErrInvalidInput.while(`building comparison`).because(
			errf(`empty operator for field %q`, field),
		))
	}
	return self.predicate(glue, self.field(field)+` `+strings.TrimSpace(operator)+` `+self.reg.Register(value))
}

func (self *Filter[Owner]) in(glue Glue, field string, values []any) Owner {
	values = flattenValues(values)
	if len(values) == 0 {
		self.errs = append(self.errs, ErrInvalidInput.while(`building IN predicate`).because(
			errf(`empty value list for field %q`, field),
		))
	}

	params := make([]string, 0, len(values))
	for _, val := range values {
		params = append(params, self.reg.Register(val))
	}

	var buf bui
	buf.Str(self.field(field))
	buf.Str(`IN (`)
	buf.Comma(params)
	buf.Str(`)`)
	return self.predicate(glue, buf.String())
}

func (self *Filter[Owner]) between(glue Glue, field string, min, max int) Owner {
	var buf bui
	buf.Str(self.field(field))
	buf.Str(`BETWEEN`)
	buf.Int(min)
	buf.Str(GlueAnd.String())
	buf.Int(max)
	return self.predicate(glue, buf.String())
}

func (self *Filter[Owner]) pattern(prefix string, src any, suffix string) any {
	val, err := ValueOf(src)
	if err != nil {
		self.errs = append(self.errs, err)
		return nil
	}
	return prefix + val.String() + suffix
}

/*
Renders the token stream into "WHERE ..." in a single pass. The second return
value is false when there are no tokens, in which case the segment must be
omitted.
*/
func (self *Filter[Owner]) whereStatements() (string, bool) {
	if len(self.tokens) == 0 {
		return ``, false
	}

	buf := makeBui(64)
	buf.Str(`WHERE`)

	pending := GlueNone
	follows := false

	for _, tok := range self.tokens {
		switch tok.Kind {
		case TokenGlue:
			pending = tok.Glue

		case TokenOpen:
			if follows {
				buf.Str(pending.Or(GlueAnd).String())
			}
			buf.Str(`(`)
			pending, follows = GlueNone, false

		case TokenClose:
			buf.Str(`)`)
			pending, follows = GlueNone, true

		default:
			if follows {
				buf.Str(pending.Or(tok.Glue).Or(GlueAnd).String())
			}
			buf.Str(tok.Text)
			pending, follows = GlueNone, true
		}
	}

	return buf.String(), true
}

// Returns the errors detected in the token stream, or nil.
func (self *Filter[Owner]) filterErr() []error {
	errs := self.errs

	depth := 0
	for _, tok := range self.tokens {
		switch tok.Kind {
		case TokenOpen:
			depth++
		case TokenClose:
			depth--
		}
		if depth < 0 {
			break
		}
	}

	if depth != 0 {
		errs = append(errs, ErrUnbalancedGroup.while(`rendering WHERE clause`).because(
			errf(`groups opened and closed don't match (depth %d)`, depth),
		))
	}
	return errs
}

func flattenValues(src []any) []any {
	if len(src) != 1 || src[0] == nil {
		return src
	}

	switch src[0].(type) {
	case []byte, Value:
		return src
	}

	val := r.ValueOf(src[0])
	if val.Kind() != r.Slice && val.Kind() != r.Array {
		return src
	}

	out := make([]any, 0, val.Len())
	for ind := 0; ind < val.Len(); ind++ {
		out = append(out, val.Index(ind).Interface())
	}
	return out
}
