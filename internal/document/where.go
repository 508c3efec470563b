package document

import (
	"fmt"
	"strings"

	"github.com/mitranim/fermion"
)

func applyJoins[Owner any](dst *fermion.Joins[Owner], src []Join) error {
	for _, val := range src {
		switch strings.ToLower(strings.TrimSpace(val.Kind)) {
		case ``, `inner`:
			dst.InnerJoin(val.Table, val.Local, val.Foreign)
		case `left`:
			dst.LeftJoin(val.Table, val.Local, val.Foreign)
		case `right`:
			dst.RightJoin(val.Table, val.Local, val.Foreign)
		case `outer`, `full`, `full outer`:
			dst.OuterJoin(val.Table, val.Local, val.Foreign)
		default:
			return fmt.Errorf("unknown join kind %q", val.Kind)
		}
	}
	return nil
}

func applyWhere[Owner any](dst *fermion.Filter[Owner], src []Where) error {
	for ind, val := range src {
		if err := applyItem(dst, val); err != nil {
			return fmt.Errorf("where item %d: %w", ind, err)
		}
	}
	return nil
}

func applyItem[Owner any](dst *fermion.Filter[Owner], item Where) error {
	if item.Token != `` {
		switch strings.ToLower(strings.TrimSpace(item.Token)) {
		case `and`:
			dst.And()
		case `or`:
			dst.Or()
		case `(`:
			dst.StartGroup()
		case `)`:
			dst.EndGroup()
		default:
			return fmt.Errorf("unknown token %q; expected one of: and, or, (, )", item.Token)
		}
		return nil
	}

	if item.Raw != `` {
		if item.Or {
			dst.Or()
		}
		dst.Raw(item.Raw)
		return nil
	}

	if strings.TrimSpace(item.Field) == `` {
		return fmt.Errorf("missing field")
	}

	field := item.Field

	switch {
	case item.In != nil:
		pick(item.Or, dst.In, dst.OrIn)(field, item.In...)
		return nil

	case item.Between != nil:
		if len(item.Between) != 2 {
			return fmt.Errorf("between expects [min, max], got %d values", len(item.Between))
		}
		pick(item.Or, dst.InBetween, dst.OrInBetween)(field, item.Between[0], item.Between[1])
		return nil

	case item.Null != nil:
		if *item.Null {
			pick(item.Or, dst.IsNull, dst.OrIsNull)(field)
		} else {
			pick(item.Or, dst.NotNull, dst.OrNotNull)(field)
		}
		return nil
	}

	return applyOp(dst, item)
}

func applyOp[Owner any](dst *fermion.Filter[Owner], item Where) error {
	field, val, or := item.Field, item.Value, item.Or

	switch op := strings.ToLower(strings.TrimSpace(item.Op)); op {
	case `=`, `==`:
		pick(or, dst.Equal, dst.OrEqual)(field, val)
	case `!=`:
		pick(or, dst.NotEqual, dst.OrNotEqual)(field, val)
	case `<>`:
		pick(or, dst.Where, dst.OrWhere)(field, op, val)
	case `<`:
		pick(or, dst.LessThan, dst.OrLessThan)(field, val)
	case `>`:
		pick(or, dst.GreaterThan, dst.OrGreaterThan)(field, val)
	case `<=`:
		pick(or, dst.LessThanEqual, dst.OrLessThanEqual)(field, val)
	case `>=`:
		pick(or, dst.GreaterThanEqual, dst.OrGreaterThanEqual)(field, val)
	case `like`:
		pick(or, dst.Like, dst.OrLike)(field, val)
	case `not_like`:
		pick(or, dst.NotLike, dst.OrNotLike)(field, val)
	case `starts_with`:
		pick(or, dst.StartsWith, dst.OrStartsWith)(field, val)
	case `not_starts_with`:
		pick(or, dst.NotStartsWith, dst.OrNotStartsWith)(field, val)
	case `ends_with`:
		pick(or, dst.EndsWith, dst.OrEndsWith)(field, val)
	case `not_ends_with`:
		pick(or, dst.NotEndsWith, dst.OrNotEndsWith)(field, val)
	case `contain`, `contains`:
		pick(or, dst.Contain, dst.OrContain)(field, val)
	case `not_contain`, `not_contains`:
		pick(or, dst.NotContain, dst.OrNotContain)(field, val)
	case `empty`:
		pick(or, dst.Empty, dst.OrEmpty)(field)
	case `not_empty`:
		pick(or, dst.NotEmpty, dst.OrNotEmpty)(field)
	case ``:
		return fmt.Errorf("missing op for field %q", field)
	default:
		return fmt.Errorf("unknown op %q for field %q", item.Op, field)
	}
	return nil
}

func pick[Fun any](or bool, and, orFun Fun) Fun {
	if or {
		return orFun
	}
	return and
}
