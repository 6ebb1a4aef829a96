package collection

import (
	"context"
	"strconv"
)

// merge copies the top-level entries of value onto current. Both are first
// converted to their generic JSON form. If current is not an object or a list,
// value is returned unchanged.
func (c *Collection[T]) merge(ctx context.Context, current T, value any) (any, error) {
	cur, err := c.generic(ctx, current)
	if err != nil {
		return nil, err
	}
	switch cur := cur.(type) {
	case map[string]any:
		val, err := c.generic(ctx, value)
		if err != nil {
			return nil, err
		}
		return mergeMap(cur, val), nil
	case []any:
		val, err := c.generic(ctx, value)
		if err != nil {
			return nil, err
		}
		return mergeList(cur, val), nil
	default:
		return value, nil
	}
}

// generic converts v into maps, lists and primitives by round tripping it
// through the collection codec.
func (c *Collection[T]) generic(ctx context.Context, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := c.serializer.Serialize(ctx, v)
	if err != nil {
		return nil, err
	}
	var res any
	if err := c.deserializer.Deserialize(ctx, b, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func mergeMap(cur map[string]any, val any) map[string]any {
	switch val := val.(type) {
	case map[string]any:
		for k, v := range val {
			cur[k] = v
		}
	case []any:
		for i, v := range val {
			cur[strconv.Itoa(i)] = v
		}
	}
	return cur
}

func mergeList(cur []any, val any) []any {
	switch val := val.(type) {
	case []any:
		for i, v := range val {
			cur = setIndex(cur, i, v)
		}
	case map[string]any:
		for k, v := range val {
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 || strconv.Itoa(i) != k {
				continue
			}
			cur = setIndex(cur, i, v)
		}
	}
	return cur
}

func setIndex(lst []any, i int, v any) []any {
	for len(lst) <= i {
		lst = append(lst, nil)
	}
	lst[i] = v
	return lst
}
