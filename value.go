package fermion

import (
	"database/sql/driver"
	"fmt"
	"math"
	r "reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mitranim/refut"
)

// Layout used for encoding `time.Time` values, matching MySQL's DATETIME.
const TimeLayout = `2006-01-02 15:04:05`

// Enum for the scalar kinds a placeholder value may have.
type Kind byte

const (
	KindNull  Kind = 0
	KindText  Kind = 1
	KindInt   Kind = 2
	KindFloat Kind = 3
	KindBool  Kind = 4
)

// Implement `fmt.Stringer` for debug purposes.
func (self Kind) String() string {
	switch self {
	case KindText:
		return `text`
	case KindInt:
		return `int`
	case KindFloat:
		return `float`
	case KindBool:
		return `bool`
	default:
		return `null`
	}
}

/*
Closed variant of scalar values that may be bound to a placeholder: null, text,
integer, floating-point or boolean. Obtained from arbitrary Go values via
`ValueOf`, or constructed directly via `Null`, `Text`, `Int`, `Float`, `Bool`.

Implements `driver.Valuer`, so a `Value` can be passed to `database/sql` as-is.
*/
type Value struct {
	kind Kind
	text string
	num  int64
	flt  float64
	flag bool
}

func Null() Value               { return Value{} }
func Text(val string) Value     { return Value{kind: KindText, text: val} }
func Int(val int64) Value       { return Value{kind: KindInt, num: val} }
func Float(val float64) Value   { return Value{kind: KindFloat, flt: val} }
func Bool(val bool) Value       { return Value{kind: KindBool, flag: val} }
func (self Value) Kind() Kind   { return self.kind }
func (self Value) IsNull() bool { return self.kind == KindNull }

/*
Returns the scalar as one of: nil, string, int64, float64, bool. Useful for
comparisons and for encoding into formats such as JSON.
*/
func (self Value) Interface() any {
	switch self.kind {
	case KindText:
		return self.text
	case KindInt:
		return self.num
	case KindFloat:
		return self.flt
	case KindBool:
		return self.flag
	default:
		return nil
	}
}

// Implement `driver.Valuer`.
func (self Value) Value() (driver.Value, error) { return self.Interface(), nil }

/*
Implement `fmt.Stringer`, returning the string-coerced form of the scalar. Null
is "", booleans are "1" or "0", floats avoid the scientific notation.
*/
func (self Value) String() string {
	switch self.kind {
	case KindText:
		return self.text
	case KindInt:
		return strconv.FormatInt(self.num, 10)
	case KindFloat:
		return strconv.FormatFloat(self.flt, 'f', -1, 64)
	case KindBool:
		if self.flag {
			return `1`
		}
		return `0`
	default:
		return ``
	}
}

/*
Converts an arbitrary Go value into a `Value`. Supported inputs, in this order
of priority:

	* nil, nil pointers and nil `driver.Valuer` -> null
	* `Value`                                   -> as-is
	* `time.Time`                               -> text in `TimeLayout`
	* `driver.Valuer`                           -> converted result of `.Value()`
	* pointers to any of the above or below     -> dereferenced
	* signed and unsigned integers              -> int
	* floats                                    -> float
	* bools                                     -> bool
	* `fmt.Stringer`                            -> text
	* strings, `[]byte`                         -> text

Numeric kinds win over `fmt.Stringer`, so `time.Duration` and enum-like named
integers bind as numbers. A pointer whose target can't be converted falls back
to its own `fmt.Stringer` method, if any.

Composite inputs such as slices, maps and structs are rejected with
`ErrUnsupportedValue`, and the returned value is null.
*/
func ValueOf(src any) (Value, error) {
	switch src := src.(type) {
	case nil:
		return Null(), nil
	case Value:
		return src, nil
	case string:
		return Text(src), nil
	case []byte:
		if src == nil {
			return Null(), nil
		}
		return Text(string(src)), nil
	case bool:
		return Bool(src), nil
	case time.Time:
		return Text(src.Format(TimeLayout)), nil
	case driver.Valuer:
		if refut.IsNil(src) {
			return Null(), nil
		}
		val, err := src.Value()
		if err != nil {
			return Null(), ErrUnsupportedValue.while(`converting driver.Valuer`).because(err)
		}
		if _, ok := val.(driver.Valuer); ok {
			return Null(), ErrUnsupportedValue.while(`converting driver.Valuer`).because(
				errf(`%T produced another valuer %T`, src, val),
			)
		}
		return ValueOf(val)
	}

	rval := r.ValueOf(src)

	switch rval.Kind() {
	case r.Ptr:
		if rval.IsNil() {
			return Null(), nil
		}
		out, err := ValueOf(rval.Elem().Interface())
		if err != nil {
			if str, ok := src.(fmt.Stringer); ok {
				return Text(str.String()), nil
			}
		}
		return out, err

	case r.Int, r.Int8, r.Int16, r.Int32, r.Int64:
		return Int(rval.Int()), nil

	case r.Uint, r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uintptr:
		val := rval.Uint()
		if val > math.MaxInt64 {
			return Text(strconv.FormatUint(val, 10)), nil
		}
		return Int(int64(val)), nil

	case r.Float32, r.Float64:
		return Float(rval.Float()), nil

	case r.Bool:
		return Bool(rval.Bool()), nil
	}

	if str, ok := src.(fmt.Stringer); ok {
		if refut.IsNil(src) {
			return Null(), nil
		}
		return Text(str.String()), nil
	}

	switch rval.Kind() {
	case r.String:
		return Text(rval.String()), nil

	case r.Slice:
		if rval.Type().Elem().Kind() == r.Uint8 {
			return Text(string(rval.Bytes())), nil
		}
	}

	return Null(), ErrUnsupportedValue.while(`converting value`).because(
		errf(`unsupported type %v; expected a scalar`, rval.Type()),
	)
}

var (
	tagReg          = regexp.MustCompile(`<[^>]*>`)
	textSanitizeRep = strings.NewReplacer(
		"\x00", ``,
		`'`, `&#39;`,
		`"`, `&#34;`,
	)
)

/*
Strips markup-like tags and NUL bytes from text values and encodes quotes.
Other kinds are returned as-is. This only keeps the generated metadata tidy;
it's not a substitute for parameter binding, which must still be done by the
database driver.
*/
func Sanitize(val Value) Value {
	if val.kind != KindText {
		return val
	}
	val.text = textSanitizeRep.Replace(tagReg.ReplaceAllString(val.text, ``))
	return val
}
