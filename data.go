package fermion

import (
	r "reflect"
	"sort"

	"github.com/mitranim/refut"
)

// Tag used by `StructData` to find column names.
const TagNameDb = `db`

// Single column-value pair for INSERT and UPDATE.
type Pair struct {
	Column string
	Value  any
}

/*
Ordered column-value mapping for INSERT and UPDATE. The order determines the
order of columns and placeholders in the generated text.
*/
type Data []Pair

/*
Converts a map into `Data`, sorting the keys lexically. Go maps are unordered,
so this is the only way to get deterministic output from a map.
*/
func DataFrom(src map[string]any) Data {
	if len(src) == 0 {
		return nil
	}

	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(Data, 0, len(keys))
	for _, key := range keys {
		out = append(out, Pair{key, src[key]})
	}
	return out
}

// Appends a pair, returning the modified `Data`.
func (self Data) Add(column string, value any) Data {
	return append(self, Pair{column, value})
}

// Returns the columns as provided, in order.
func (self Data) Columns() []string {
	out := make([]string, 0, len(self))
	for _, val := range self {
		out = append(out, val.Column)
	}
	return out
}

/*
Scans a struct, accumulating fields tagged with `db` into `Data`, in field
order. The input must be a struct or a struct pointer. A nil pointer is fine
and produces empty `Data`. Panics on other inputs. Treats embedded structs as
part of enclosing structs.

	type Person struct {
		Name  string `db:"name"`
		Email string `db:"email"`
		Note  string
	}

	fermion.StructData(Person{`Kim`, `kim@example.com`, ``})
	// fermion.Data{{`name`, `Kim`}, {`email`, `kim@example.com`}}
*/
func StructData(src any) Data {
	if src == nil {
		return nil
	}

	rval := r.ValueOf(src)
	rtype := refut.RtypeDeref(rval.Type())

	if rtype.Kind() != r.Struct {
		panic(ErrInvalidInput.while(`scanning struct for DB fields`).because(
			errf(`expected struct, got %q`, rtype),
		))
	}

	if refut.IsRvalNil(rval) {
		return nil
	}

	var out Data
	try(refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		name := FieldDbName(sfield)
		if name != `` {
			out = append(out, Pair{name, rval.Interface()})
		}
		return nil
	}))
	return out
}

/*
Returns the field's DB column name from the "db" tag, following the JSON
convention of eliding anything after a comma and treating "-" as a non-name.
*/
func FieldDbName(field r.StructField) string {
	return refut.TagIdent(field.Tag.Get(TagNameDb))
}
