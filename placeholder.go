package fermion

import (
	"database/sql"
	"errors"
	"strconv"
)

// Single registered placeholder: a generated name such as "v0" and the
// sanitized value bound to it.
type Placeholder struct {
	Name  string
	Value Value
}

// Returns the reference to this placeholder as it appears in SQL text, such
// as ":v0".
func (self Placeholder) Param() string { return string(namedParamPrefix) + self.Name }

/*
Ordered sequence of placeholders, in registration order. This is the
"placeholder to value" mapping returned by every statement's `.Values()`.
*/
type Placeholders []Placeholder

// Returns the placeholder names in order.
func (self Placeholders) Names() []string {
	out := make([]string, 0, len(self))
	for _, val := range self {
		out = append(out, val.Name)
	}
	return out
}

// Returns the value registered under the given name, if any.
func (self Placeholders) Get(name string) (Value, bool) {
	for _, val := range self {
		if val.Name == name {
			return val.Value, true
		}
	}
	return Value{}, false
}

/*
Returns a map from placeholder names to scalar values (see `Value.Interface`).
Loses the ordering; use the slice itself when order matters.
*/
func (self Placeholders) Map() map[string]any {
	out := make(map[string]any, len(self))
	for _, val := range self {
		out[val.Name] = val.Value.Interface()
	}
	return out
}

// Returns a map from placeholder names to string-coerced values (see
// `Value.String`).
func (self Placeholders) Strings() map[string]string {
	out := make(map[string]string, len(self))
	for _, val := range self {
		out[val.Name] = val.Value.String()
	}
	return out
}

/*
Returns the placeholders as `sql.NamedArg` values suitable for drivers that
support named parameters:

	text, vals := stmt.SQL(), stmt.Values()
	rows, err := db.QueryContext(ctx, text, vals.NamedArgs()...)
*/
func (self Placeholders) NamedArgs() []any {
	out := make([]any, 0, len(self))
	for _, val := range self {
		out = append(out, sql.Named(val.Name, val.Value))
	}
	return out
}

/*
Placeholder registry owned by a single statement builder. Generates the names
"v0", "v1", "v2", ... in registration order, and stores the sanitized values.
The zero value is ready to use. Not safe for concurrent use.
*/
type Registry struct {
	list Placeholders
	errs []error
}

/*
Converts the value via `ValueOf`, sanitizes it, stores it under the next
generated name, and returns the reference to embed in SQL text, such as ":v3".
Unsupported values are stored as null, and the conversion error is retained
for `.Err`.
*/
func (self *Registry) Register(src any) string {
	val, err := ValueOf(src)
	if err != nil {
		self.errs = append(self.errs, err)
	}

	out := Placeholder{
		Name:  placeholderBase + strconv.Itoa(len(self.list)),
		Value: Sanitize(val),
	}
	self.list = append(self.list, out)
	return out.Param()
}

// Returns a copy of the registered placeholders, in registration order.
func (self *Registry) Values() Placeholders {
	if len(self.list) == 0 {
		return nil
	}
	out := make(Placeholders, len(self.list))
	copy(out, self.list)
	return out
}

// Returns the amount of registered placeholders.
func (self *Registry) Len() int { return len(self.list) }

// Returns the value conversion errors collected so far, or nil.
func (self *Registry) Err() error { return errors.Join(self.errs...) }
