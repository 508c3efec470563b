/*
Fermion: fluent SQL statement builder. Given a table name and a chain of method
calls, produces parameterized SQL text plus the values bound to its
placeholders. Doesn't connect to a database or execute anything; the resulting
pair is meant for `database/sql` or any other executor that performs real
parameter binding.

Key Features

• One table-bound entry point, `fermion.New`, producing SELECT, INSERT, UPDATE,
DELETE, TRUNCATE and DROP builders.

• Column references are qualified with the table name unless already dotted:
"id" becomes "users.id", while "orders.id" is used as-is.

• Predicate and data values are not embedded into the text. Each one becomes a
named placeholder ":v0", ":v1", and so on, numbered per builder. The one
exception is `InBetween`, whose integer bounds are rendered literally.

• WHERE clauses with AND/OR glue and arbitrarily nested groups, normalized so
that the first predicate of the clause and of each group has no glue.

• Rendering is a pure function of the accumulated state: calling `.SQL` twice
returns the same text.

• Problems such as unsupported values or unbalanced groups are collected and
reported by `.Err`, rather than panicking mid-chain.

• `Rebind` converts the named placeholders into "?" or "$N" for drivers that
don't support named arguments.

Targets a MySQL-like dialect: backtick-quoted table in SELECT's FROM clause,
two-argument LIMIT, and ORDER BY RAND() for random ordering.

Examples

See `Table`, `Select`, `Filter` and `Rebind` for examples.
*/
package fermion
