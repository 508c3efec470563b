package fermion

import (
	"errors"
	"reflect"
	"testing"
)

type (
	B  = testing.B
	T  = testing.T
	TB = testing.TB
)

type vals = map[string]any

func eq(t TB, expected any, actual any) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected:\n%#v\nactual:\n%#v", expected, actual)
	}
}

func testStmt(t TB, stmt Statement, expText string, expVals vals) {
	t.Helper()
	eq(t, expText, stmt.SQL())
	eq(t, expText, stmt.SQL())
	if expVals == nil {
		eq(t, 0, len(stmt.Values()))
	} else {
		eq(t, expVals, stmt.Values().Map())
	}
	noErr(t, stmt.Err())
}

func noErr(t TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func isErr(t TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error matching %v, got %v", target, err)
	}
}

func panics(t TB, target error, fun func()) {
	t.Helper()

	var val any
	func() {
		defer func() { val = recover() }()
		fun()
	}()

	err, _ := val.(error)
	if err == nil {
		t.Fatalf("expected a panic with error %v, got %#v", target, val)
	}
	isErr(t, err, target)
}
