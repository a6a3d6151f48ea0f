package value

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// stringOrder is a single shared collator used for all String comparisons,
// so relational operators and sorting agree on ordering. Und (undetermined
// locale) gives a reasonable default ordering without committing to any
// one language's collation rules.
var stringOrder = collate.New(language.Und)

// Compare orders two Values. Numeric operands order by promoted numeric
// value; strings order by locale-aware collation rather than a byte-wise
// comparison, so accented and cased variants of a letter sort adjacently;
// arrays and objects order structurally and recursively, per spec. ok is
// false when the operands are neither both numeric, both strings, both
// arrays, nor both objects (e.g. a String against an Array).
func Compare(a, b Value) (int, bool) {
	if a.IsNumeric() && b.IsNumeric() {
		af, _ := a.ToFloat()
		bf, _ := b.ToFloat()
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if a.kind == String && b.kind == String {
		return stringOrder.CompareString(a.s, b.s), true
	}
	if a.kind == Array && b.kind == Array {
		return compareArrays(a.arr, b.arr)
	}
	if a.kind == Object && b.kind == Object {
		return compareObjects(a.obj, b.obj)
	}
	return 0, false
}

// compareArrays orders two arrays lexicographically: the first index at
// which the elements differ decides the result; if one array is a prefix
// of the other, the shorter array sorts first.
func compareArrays(a, b []Value) (int, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		c, ok := Compare(a[i], b[i])
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	switch {
	case len(a) < len(b):
		return -1, true
	case len(a) > len(b):
		return 1, true
	default:
		return 0, true
	}
}

// compareObjects orders two objects by their sorted key/value pairs: keys
// are compared first (lexicographically), then the value under the first
// differing key; an object whose sorted keys are a prefix of the other's
// sorts first.
func compareObjects(a, b *OrderedMap) (int, bool) {
	ak, bk := a.SortedKeys(), b.SortedKeys()
	n := len(ak)
	if len(bk) < n {
		n = len(bk)
	}
	for i := 0; i < n; i++ {
		if ak[i] != bk[i] {
			if ak[i] < bk[i] {
				return -1, true
			}
			return 1, true
		}
		av, _ := a.Get(ak[i])
		bv, _ := b.Get(bk[i])
		c, ok := Compare(av, bv)
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	switch {
	case len(ak) < len(bk):
		return -1, true
	case len(ak) > len(bk):
		return 1, true
	default:
		return 0, true
	}
}
