package fermion

import "testing"

func TestJoinKind_String(t *testing.T) {
	eq(t, `INNER`, JoinInner.String())
	eq(t, `LEFT`, JoinLeft.String())
	eq(t, `RIGHT`, JoinRight.String())
	eq(t, `FULL OUTER`, JoinFullOuter.String())
}

func TestJoinClause_Render(t *testing.T) {
	eq(t,
		`RIGHT JOIN orders ON users.id = orders.user_id`,
		JoinClause{JoinRight, `orders`, `id`, `user_id`}.Render(`users`),
	)
	eq(t,
		`INNER JOIN orders ON accounts.id = items.order_id`,
		JoinClause{JoinInner, `orders`, `accounts.id`, `items.order_id`}.Render(`users`),
	)
}

func TestJoins(t *testing.T) {
	stmt := users().Select(`id`).
		InnerJoin(`a`, `a_id`, `id`).
		LeftJoin(`b`, `b_id`, `id`).
		RightJoin(`c`, `c_id`, `id`).
		OuterJoin(`d`, `d_id`, `id`)

	testStmt(t,
		stmt,
		"SELECT users.id FROM `users` INNER JOIN a ON users.a_id = a.id LEFT JOIN b ON users.b_id = b.id RIGHT JOIN c ON users.c_id = c.id FULL OUTER JOIN d ON users.d_id = d.id",
		nil,
	)

	eq(t, []JoinClause{
		{JoinInner, `a`, `a_id`, `id`},
		{JoinLeft, `b`, `b_id`, `id`},
		{JoinRight, `c`, `c_id`, `id`},
		{JoinFullOuter, `d`, `d_id`, `id`},
	}, stmt.JoinClauses())

	eq(t, []JoinClause(nil), users().Delete().JoinClauses())
}
