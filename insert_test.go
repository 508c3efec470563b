package fermion

import "testing"

func TestInsert(t *testing.T) {
	t.Run(`single column`, func(t *testing.T) {
		testStmt(t,
			users().Insert(Data{{`email`, `x@y.com`}}),
			`INSERT INTO users (users.email) VALUES(:v0)`,
			vals{`v0`: `x@y.com`},
		)
	})

	t.Run(`order follows data`, func(t *testing.T) {
		testStmt(t,
			users().Insert(Data{{`name`, `Kim`}, {`age`, 30}, {`admin`, false}}),
			`INSERT INTO users (users.name, users.age, users.admin) VALUES(:v0, :v1, :v2)`,
			vals{`v0`: `Kim`, `v1`: int64(30), `v2`: false},
		)
	})

	t.Run(`dotted keys pass through`, func(t *testing.T) {
		testStmt(t,
			users().Insert(Data{{`users.name`, `Kim`}, {`email`, `k@y.com`}}),
			`INSERT INTO users (users.name, users.email) VALUES(:v0, :v1)`,
			vals{`v0`: `Kim`, `v1`: `k@y.com`},
		)
	})

	t.Run(`from map`, func(t *testing.T) {
		testStmt(t,
			users().Insert(DataFrom(map[string]any{`name`: `Kim`, `age`: 30})),
			`INSERT INTO users (users.age, users.name) VALUES(:v0, :v1)`,
			vals{`v0`: int64(30), `v1`: `Kim`},
		)
	})

	t.Run(`null value`, func(t *testing.T) {
		var ptr *string
		testStmt(t,
			users().Insert(Data{{`name`, ptr}}),
			`INSERT INTO users (users.name) VALUES(:v0)`,
			vals{`v0`: nil},
		)
	})

	t.Run(`idempotent`, func(t *testing.T) {
		stmt := users().Insert(Data{{`email`, `x@y.com`}})
		eq(t, stmt.SQL(), stmt.SQL())
		eq(t, 1, len(stmt.Values()))
		eq(t, 1, len(stmt.Values()))
	})

	t.Run(`empty data`, func(t *testing.T) {
		stmt := users().Insert(nil)
		eq(t, `INSERT INTO users () VALUES()`, stmt.SQL())
		isErr(t, stmt.Err(), ErrInvalidInput)
	})

	t.Run(`empty column`, func(t *testing.T) {
		stmt := users().Insert(Data{{` `, 1}, {`id`, 2}})
		eq(t, `INSERT INTO users (users.id) VALUES(:v0)`, stmt.SQL())
		isErr(t, stmt.Err(), ErrInvalidInput)
	})

	t.Run(`duplicate column`, func(t *testing.T) {
		stmt := users().Insert(Data{{`id`, 1}, {`users.id`, 2}})
		eq(t, `INSERT INTO users (users.id) VALUES(:v0)`, stmt.SQL())
		eq(t, vals{`v0`: int64(1)}, stmt.Values().Map())
		isErr(t, stmt.Err(), ErrInvalidInput)
	})

	t.Run(`unsupported value`, func(t *testing.T) {
		stmt := users().Insert(Data{{`tags`, map[string]int{}}})
		eq(t, vals{`v0`: nil}, stmt.Values().Map())
		isErr(t, stmt.Err(), ErrUnsupportedValue)
	})

	t.Run(`columns accessor`, func(t *testing.T) {
		eq(t, []string{`users.a`, `orders.b`}, users().Insert(Data{{`a`, 1}, {`orders.b`, 2}}).Columns())
	})
}
