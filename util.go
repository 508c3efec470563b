package fermion

import (
	"strings"
	"unsafe"
)

const (
	namedParamPrefix = ':'
	placeholderBase  = `v`
	columnDelim      = `.`
	listDelim        = `,`
	starColumn       = `*`
)

var (
	charsetDelimStart = new(charset).addStr(" \t\v\r\n([{.")
	charsetDelimEnd   = new(charset).addStr(" \t\v\r\n,}])")
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Reasonably safe. Should not be used when the underlying
byte array is volatile.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

func appendMaybeSpaced(text []byte, suffix string) []byte {
	if !hasDelimSuffix(bytesToMutableString(text)) && !hasDelimPrefix(suffix) {
		text = append(text, ` `...)
	}
	text = append(text, suffix...)
	return text
}

func hasDelimPrefix(text string) bool {
	return len(text) == 0 || charsetDelimEnd.has(text[0])
}

func hasDelimSuffix(text string) bool {
	return len(text) == 0 || charsetDelimStart.has(text[len(text)-1])
}

/*
Qualifies a column reference with the given table name, unless the reference
is already dotted, in which case it's returned as-is:

	qualify(`users`, `id`)        == `users.id`
	qualify(`users`, `orders.id`) == `orders.id`
*/
func qualify(table, column string) string {
	column = strings.TrimSpace(column)
	if isQualified(column) {
		return column
	}
	return table + columnDelim + column
}

func isQualified(column string) bool { return strings.Contains(column, columnDelim) }

func qualifyAll(table string, columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		out = append(out, qualify(table, col))
	}
	return out
}

/*
Splits comma-delimited column lists such as "id, name" into individual
columns, trimming surrounding whitespace and dropping empty entries.
*/
func splitList(src string) []string {
	var out []string
	for _, val := range strings.Split(src, listDelim) {
		val = strings.TrimSpace(val)
		if val != `` {
			out = append(out, val)
		}
	}
	return out
}

func splitLists(src []string) []string {
	var out []string
	for _, val := range src {
		out = append(out, splitList(val)...)
	}
	return out
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}
