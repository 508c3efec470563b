package fermion

import (
	"testing"
	"time"
)

func users() Table { return New(`users`) }

func TestParseToken(t *testing.T) {
	test := func(src string, exp Token) {
		t.Helper()
		eq(t, exp, ParseToken(src))
	}

	test(`(`, Token{Kind: TokenOpen})
	test(` ) `, Token{Kind: TokenClose})
	test(`AND`, Token{Kind: TokenGlue, Glue: GlueAnd})
	test(`and`, Token{Kind: TokenGlue, Glue: GlueAnd})
	test(`Or`, Token{Kind: TokenGlue, Glue: GlueOr})
	test(`users.id = 1`, Token{Kind: TokenCond, Text: `users.id = 1`})
	test(`AND users.id = 1`, Token{Kind: TokenCond, Glue: GlueAnd, Text: `users.id = 1`})
	test(`or  users.id = 1`, Token{Kind: TokenCond, Glue: GlueOr, Text: `users.id = 1`})
	test(`ORDER = 1`, Token{Kind: TokenCond, Text: `ORDER = 1`})
	test(`ANDROID = 1`, Token{Kind: TokenCond, Text: `ANDROID = 1`})
	test(`AND ( users.a = 1 )`, Token{Kind: TokenCond, Glue: GlueAnd, Text: `(users.a = 1)`})
	test(`(OR users.a = 1) OR (ORDER = 2)`, Token{Kind: TokenCond, Text: `(users.a = 1) OR (ORDER = 2)`})
}

func TestToken_String(t *testing.T) {
	eq(t, `(`, Token{Kind: TokenOpen}.String())
	eq(t, `)`, Token{Kind: TokenClose}.String())
	eq(t, `OR`, Token{Kind: TokenGlue, Glue: GlueOr}.String())
	eq(t, `a = 1`, Token{Kind: TokenCond, Text: `a = 1`}.String())
	eq(t, `AND a = 1`, Token{Kind: TokenCond, Glue: GlueAnd, Text: `a = 1`}.String())
}

func TestFilter_tokens(t *testing.T) {
	stmt := users().Delete().Equal(`id`, 5).Or().StartGroup().IsNull(`name`).EndGroup()

	eq(t, []Token{
		{Kind: TokenCond, Glue: GlueAnd, Text: `users.id = :v0`},
		{Kind: TokenGlue, Glue: GlueOr},
		{Kind: TokenOpen},
		{Kind: TokenCond, Glue: GlueAnd, Text: `users.name IS NULL`},
		{Kind: TokenClose},
	}, stmt.Tokens())

	eq(t, []Token(nil), users().Delete().Tokens())
}

func TestFilter_glue(t *testing.T) {
	t.Run(`none`, func(t *testing.T) {
		testStmt(t, users().Delete(), `DELETE FROM users`, nil)
	})

	t.Run(`leading glue is stripped`, func(t *testing.T) {
		testStmt(t,
			users().Delete().OrEqual(`id`, 5),
			`DELETE FROM users WHERE users.id = :v0`,
			vals{`v0`: int64(5)},
		)
	})

	t.Run(`bare glue overrides`, func(t *testing.T) {
		testStmt(t,
			users().Delete().Equal(`id`, 5).Or().Equal(`name`, `a`),
			`DELETE FROM users WHERE users.id = :v0 OR users.name = :v1`,
			vals{`v0`: int64(5), `v1`: `a`},
		)
	})

	t.Run(`default AND`, func(t *testing.T) {
		testStmt(t,
			users().Delete().Equal(`id`, 5).Equal(`name`, `a`).OrEqual(`role`, `admin`),
			`DELETE FROM users WHERE users.id = :v0 AND users.name = :v1 OR users.role = :v2`,
			vals{`v0`: int64(5), `v1`: `a`, `v2`: `admin`},
		)
	})

	t.Run(`trailing glue is dropped`, func(t *testing.T) {
		testStmt(t,
			users().Delete().Equal(`id`, 5).Or(),
			`DELETE FROM users WHERE users.id = :v0`,
			vals{`v0`: int64(5)},
		)
	})

	t.Run(`raw`, func(t *testing.T) {
		testStmt(t,
			users().Delete().Raw(`users.x > 1`).Raw(`or users.y < 2`).Raw(` `).Raw(`users.z = 3`),
			`DELETE FROM users WHERE users.x > 1 OR users.y < 2 AND users.z = 3`,
			nil,
		)
	})

	t.Run(`raw with parens`, func(t *testing.T) {
		testStmt(t,
			users().Delete().Raw(`( users.a = 1 OR users.b = 2 )`),
			`DELETE FROM users WHERE (users.a = 1 OR users.b = 2)`,
			nil,
		)

		testStmt(t,
			users().Delete().Equal(`c`, 3).Raw(`or (  AND users.a = 1 OR ( or users.b = 2  ) )`),
			`DELETE FROM users WHERE users.c = :v0 OR (users.a = 1 OR (users.b = 2))`,
			vals{`v0`: int64(3)},
		)
	})
}

func TestFilter_groups(t *testing.T) {
	t.Run(`single group`, func(t *testing.T) {
		testStmt(t,
			users().Delete().StartGroup().Equal(`a`, 1).Or().Equal(`b`, 2).EndGroup(),
			`DELETE FROM users WHERE (users.a = :v0 OR users.b = :v1)`,
			vals{`v0`: int64(1), `v1`: int64(2)},
		)
	})

	t.Run(`group then predicate`, func(t *testing.T) {
		testStmt(t,
			users().Delete().
				StartGroup().Equal(`a`, 1).OrEqual(`b`, 2).EndGroup().
				Equal(`c`, 3),
			`DELETE FROM users WHERE (users.a = :v0 OR users.b = :v1) AND users.c = :v2`,
			vals{`v0`: int64(1), `v1`: int64(2), `v2`: int64(3)},
		)
	})

	t.Run(`predicate then glued group`, func(t *testing.T) {
		testStmt(t,
			users().Delete().
				Equal(`a`, 1).
				Or().StartGroup().Equal(`b`, 2).Equal(`c`, 3).EndGroup(),
			`DELETE FROM users WHERE users.a = :v0 OR (users.b = :v1 AND users.c = :v2)`,
			vals{`v0`: int64(1), `v1`: int64(2), `v2`: int64(3)},
		)
	})

	t.Run(`predicate then unglued group`, func(t *testing.T) {
		testStmt(t,
			users().Delete().Equal(`a`, 1).StartGroup().OrEqual(`b`, 2).EndGroup(),
			`DELETE FROM users WHERE users.a = :v0 AND (users.b = :v1)`,
			vals{`v0`: int64(1), `v1`: int64(2)},
		)
	})

	t.Run(`nested`, func(t *testing.T) {
		testStmt(t,
			users().Delete().
				StartGroup().
				StartGroup().Equal(`a`, 1).EndGroup().
				OrEqual(`b`, 2).
				EndGroup(),
			`DELETE FROM users WHERE ((users.a = :v0) OR users.b = :v1)`,
			vals{`v0`: int64(1), `v1`: int64(2)},
		)
	})

	t.Run(`adjacent groups`, func(t *testing.T) {
		testStmt(t,
			users().Delete().
				StartGroup().Equal(`a`, 1).EndGroup().
				Or().
				StartGroup().Equal(`b`, 2).EndGroup(),
			`DELETE FROM users WHERE (users.a = :v0) OR (users.b = :v1)`,
			vals{`v0`: int64(1), `v1`: int64(2)},
		)
	})
}

func TestFilter_unbalanced(t *testing.T) {
	t.Run(`unclosed`, func(t *testing.T) {
		stmt := users().Delete().StartGroup().Equal(`a`, 1)
		eq(t, `DELETE FROM users WHERE (users.a = :v0`, stmt.SQL())
		isErr(t, stmt.Err(), ErrUnbalancedGroup)
	})

	t.Run(`unopened`, func(t *testing.T) {
		stmt := users().Delete().Equal(`a`, 1).EndGroup()
		eq(t, `DELETE FROM users WHERE users.a = :v0)`, stmt.SQL())
		isErr(t, stmt.Err(), ErrUnbalancedGroup)
	})

	t.Run(`closed before opened`, func(t *testing.T) {
		stmt := users().Delete().EndGroup().Equal(`a`, 1).StartGroup()
		isErr(t, stmt.Err(), ErrUnbalancedGroup)
	})
}

func TestFilter_comparison(t *testing.T) {
	test := func(exp string, stmt *Delete) {
		t.Helper()
		testStmt(t, stmt, `DELETE FROM users WHERE `+exp, vals{`v0`: int64(7)})
	}

	test(`users.age = :v0`, users().Delete().Equal(`age`, 7))
	test(`users.age != :v0`, users().Delete().NotEqual(`age`, 7))
	test(`users.age < :v0`, users().Delete().LessThan(`age`, 7))
	test(`users.age > :v0`, users().Delete().GreaterThan(`age`, 7))
	test(`users.age <= :v0`, users().Delete().LessThanEqual(`age`, 7))
	test(`users.age >= :v0`, users().Delete().GreaterThanEqual(`age`, 7))
	test(`users.age <> :v0`, users().Delete().Where(`age`, ` <> `, 7))
	test(`orders.total = :v0`, users().Delete().Equal(`orders.total`, 7))
	test(`users.age = :v0`, users().Delete().Equal(` age`, 7))

	t.Run(`empty operator`, func(t *testing.T) {
		stmt := users().Delete().Where(`a`, ` `, 1)
		isErr(t, stmt.Err(), ErrInvalidInput)
		isErr(t, users().Delete().OrWhere(`a`, ``, 1).Err(), ErrInvalidInput)
	})

	t.Run(`time pointer`, func(t *testing.T) {
		inst := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		testStmt(t,
			users().Delete().Equal(`created`, &inst),
			`DELETE FROM users WHERE users.created = :v0`,
			vals{`v0`: `2024-01-02 03:04:05`},
		)
	})

	testStmt(t,
		users().Delete().
			Equal(`a`, 1).OrNotEqual(`b`, 2).OrLessThan(`c`, 3).
			OrGreaterThan(`d`, 4).OrLessThanEqual(`e`, 5).OrGreaterThanEqual(`f`, 6).
			OrWhere(`g`, `=`, 7),
		`DELETE FROM users WHERE users.a = :v0 OR users.b != :v1 OR users.c < :v2 OR users.d > :v3 OR users.e <= :v4 OR users.f >= :v5 OR users.g = :v6`,
		vals{
			`v0`: int64(1), `v1`: int64(2), `v2`: int64(3), `v3`: int64(4),
			`v4`: int64(5), `v5`: int64(6), `v6`: int64(7),
		},
	)
}

func TestFilter_like(t *testing.T) {
	test := func(exp, pattern string, stmt *Delete) {
		t.Helper()
		testStmt(t, stmt, `DELETE FROM users WHERE `+exp, vals{`v0`: pattern})
	}

	test(`users.name LIKE :v0`, `a_c`, users().Delete().Like(`name`, `a_c`))
	test(`users.name NOT LIKE :v0`, `a_c`, users().Delete().NotLike(`name`, `a_c`))
	test(`users.name LIKE :v0`, `ab%`, users().Delete().StartsWith(`name`, `ab`))
	test(`users.name NOT LIKE :v0`, `ab%`, users().Delete().NotStartsWith(`name`, `ab`))
	test(`users.name LIKE :v0`, `%ab`, users().Delete().EndsWith(`name`, `ab`))
	test(`users.name NOT LIKE :v0`, `%ab`, users().Delete().NotEndsWith(`name`, `ab`))
	test(`users.name LIKE :v0`, `%ab%`, users().Delete().Contain(`name`, `ab`))
	test(`users.name NOT LIKE :v0`, `%ab%`, users().Delete().NotContain(`name`, `ab`))
	test(`users.name LIKE :v0`, `%12%`, users().Delete().Contain(`name`, 12))

	testStmt(t,
		users().Delete().
			Equal(`id`, 1).
			OrLike(`a`, `x`).OrNotLike(`b`, `x`).
			OrStartsWith(`c`, `x`).OrNotStartsWith(`d`, `x`).
			OrEndsWith(`e`, `x`).OrNotEndsWith(`f`, `x`).
			OrContain(`g`, `x`).OrNotContain(`h`, `x`),
		`DELETE FROM users WHERE users.id = :v0 OR users.a LIKE :v1 OR users.b NOT LIKE :v2 OR users.c LIKE :v3 OR users.d NOT LIKE :v4 OR users.e LIKE :v5 OR users.f NOT LIKE :v6 OR users.g LIKE :v7 OR users.h NOT LIKE :v8`,
		vals{
			`v0`: int64(1), `v1`: `x`, `v2`: `x`, `v3`: `x%`, `v4`: `x%`,
			`v5`: `%x`, `v6`: `%x`, `v7`: `%x%`, `v8`: `%x%`,
		},
	)

	t.Run(`unsupported pattern value`, func(t *testing.T) {
		stmt := users().Delete().Contain(`name`, []int{1})
		eq(t, `DELETE FROM users WHERE users.name LIKE :v0`, stmt.SQL())
		eq(t, vals{`v0`: nil}, stmt.Values().Map())
		isErr(t, stmt.Err(), ErrUnsupportedValue)
	})
}

func TestFilter_null_and_empty(t *testing.T) {
	testStmt(t,
		users().Delete().IsNull(`a`).NotNull(`b`).OrIsNull(`c`).OrNotNull(`d`),
		`DELETE FROM users WHERE users.a IS NULL AND users.b IS NOT NULL OR users.c IS NULL OR users.d IS NOT NULL`,
		nil,
	)

	testStmt(t,
		users().Delete().Empty(`a`).NotEmpty(`b`).OrEmpty(`c`).OrNotEmpty(`d`),
		`DELETE FROM users WHERE users.a = :v0 AND users.b != :v1 OR users.c = :v2 OR users.d != :v3`,
		vals{`v0`: ``, `v1`: ``, `v2`: ``, `v3`: ``},
	)
}

func TestFilter_In(t *testing.T) {
	t.Run(`variadic`, func(t *testing.T) {
		testStmt(t,
			users().Delete().In(`id`, 1, 2, 3),
			`DELETE FROM users WHERE users.id IN (:v0, :v1, :v2)`,
			vals{`v0`: int64(1), `v1`: int64(2), `v2`: int64(3)},
		)
	})

	t.Run(`single slice is flattened`, func(t *testing.T) {
		testStmt(t,
			users().Delete().Equal(`a`, 0).OrIn(`id`, []string{`x`, `y`}),
			`DELETE FROM users WHERE users.a = :v0 OR users.id IN (:v1, :v2)`,
			vals{`v0`: int64(0), `v1`: `x`, `v2`: `y`},
		)
	})

	t.Run(`bytes are not flattened`, func(t *testing.T) {
		testStmt(t,
			users().Delete().In(`id`, []byte(`ab`)),
			`DELETE FROM users WHERE users.id IN (:v0)`,
			vals{`v0`: `ab`},
		)
	})

	t.Run(`empty`, func(t *testing.T) {
		stmt := users().Delete().In(`id`)
		eq(t, `DELETE FROM users WHERE users.id IN ()`, stmt.SQL())
		isErr(t, stmt.Err(), ErrInvalidInput)
	})
}

func TestFilter_InBetween(t *testing.T) {
	testStmt(t,
		users().Delete().InBetween(`age`, 18, 30),
		`DELETE FROM users WHERE users.age BETWEEN 18 AND 30`,
		nil,
	)

	testStmt(t,
		users().Delete().Equal(`id`, 1).OrInBetween(`orders.total`, -5, 5),
		`DELETE FROM users WHERE users.id = :v0 OR orders.total BETWEEN -5 AND 5`,
		vals{`v0`: int64(1)},
	)
}

func TestFilter_sanitized_values(t *testing.T) {
	stmt := users().Delete().Equal(`name`, `<b>O'Brien</b>`)
	eq(t, vals{`v0`: `O&#39;Brien`}, stmt.Values().Map())
}
