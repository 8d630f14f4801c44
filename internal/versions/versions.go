// Package versions parses and orders the dotted version strings used across
// EKS: cluster versions ("1.30"), addon versions ("v1.12.6-eksbuild.2"), and
// kubelet versions ("v1.29.3-eks-ae9a62a"). Build metadata after the first
// "-" is discarded before comparison; ordering is numeric per component with
// trailing zero padding, so "1.12" and "1.12.0" compare equal.
//
// Every function in this package degrades instead of failing: unparsable
// input yields ok=false or a false range check, never a panic or an error.
// Callers map the unparsable case to their own "unknown" classification.
package versions

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Version is an ordered tuple of non-negative integer components.
// It is an immutable value; compare with Compare, never with reflect.
type Version []int

// Parse converts a raw version string to a Version.
// A leading "v" is stripped and everything from the first "-" on is
// discarded (e.g. "v1.12.6-eksbuild.2" parses as 1.12.6). The second return
// value is false when the string is empty or any component is not a
// non-negative integer.
func Parse(raw string) (Version, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if i := strings.Index(s, "-"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return nil, false
	}

	parts := strings.Split(s, ".")
	v := make(Version, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, false
		}
		v = append(v, n)
	}
	return v, true
}

// Compare orders a against b component-wise, returning -1, 0, or +1.
// The shorter version is treated as padded with zeros, so 1.12 == 1.12.0.
func Compare(a, b Version) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

// CompareRaw parses both strings and compares them.
// ok is false when either side is unparsable; the comparison result is then
// meaningless and must not be used.
func CompareRaw(a, b string) (cmp int, ok bool) {
	av, aok := Parse(a)
	bv, bok := Parse(b)
	if !aok || !bok {
		return 0, false
	}
	return Compare(av, bv), true
}

// InRange reports whether min <= v <= max under Compare.
// Returns false, never an error, when any of the three inputs is unparsable.
func InRange(v, min, max string) bool {
	vv, ok := Parse(v)
	if !ok {
		return false
	}
	minV, ok := Parse(min)
	if !ok {
		return false
	}
	maxV, ok := Parse(max)
	if !ok {
		return false
	}
	return Compare(vv, minV) >= 0 && Compare(vv, maxV) <= 0
}

// Minor returns the second component of the version ("1.30" → 30).
// EKS versions share the major component in practice, so skew checks compare
// minors only; if major versions ever diverge this is the place to revisit.
func Minor(raw string) (int, bool) {
	v, ok := Parse(raw)
	if !ok || len(v) < 2 {
		return 0, false
	}
	return v[1], true
}

// MajorMinor reduces a version to its "major.minor" form, the granularity
// EKS cluster versions use ("v1.26.9-eks-ae9a62a" → "1.26").
func MajorMinor(raw string) (string, bool) {
	v, ok := Parse(raw)
	if !ok || len(v) < 2 {
		return "", false
	}
	return fmt.Sprintf("%d.%d", v[0], v[1]), true
}

// Sort orders raw version strings ascending under Compare.
// Unparsable entries sort to the front in their original relative order so
// they are easy to spot; parsable entries follow in version order.
// The input slice is not modified.
func Sort(raw []string) []string {
	type keyed struct {
		raw string
		v   Version
		ok  bool
	}
	items := make([]keyed, 0, len(raw))
	for _, r := range raw {
		v, ok := Parse(r)
		items = append(items, keyed{raw: r, v: v, ok: ok})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.ok && b.ok:
			return Compare(a.v, b.v) < 0
		case !a.ok && b.ok:
			return true
		default:
			return false
		}
	})

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.raw
	}
	return out
}
