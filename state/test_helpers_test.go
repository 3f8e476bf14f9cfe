// Package state_test contains test helpers shared across state package tests.
//
// Purpose:
//   - Keep tests stdlib-only (no third-party assertion frameworks), mirroring
//     the core package's own test convention in the wider module.
package state_test

import (
	"errors"
	"sort"
	"testing"
)

// MustErrorNil fails the test if err != nil.
func MustErrorNil(t *testing.T, err error, op string) {
	t.Helper()
	if err == nil {
		return
	}
	t.Fatalf("%s: unexpected error: %v", op, err)
}

// MustErrorIs fails the test if !errors.Is(err, target).
func MustErrorIs(t *testing.T, err error, target error, op string) {
	t.Helper()
	if errors.Is(err, target) {
		return
	}
	t.Fatalf("%s: want errors.Is(err,%v)=true; got err=%v", op, target, err)
}

// MustEqualBool fails the test if got != want.
func MustEqualBool(t *testing.T, got, want bool, op string) {
	t.Helper()
	if got == want {
		return
	}
	t.Fatalf("%s: got=%t want=%t", op, got, want)
}

// MustEqualInt fails the test if got != want.
func MustEqualInt(t *testing.T, got, want int, op string) {
	t.Helper()
	if got == want {
		return
	}
	t.Fatalf("%s: got=%d want=%d", op, got, want)
}

// MustEqualString fails the test if got != want.
func MustEqualString(t *testing.T, got, want string, op string) {
	t.Helper()
	if got == want {
		return
	}
	t.Fatalf("%s: got=%q want=%q", op, got, want)
}

// MustSameStringSet fails the test if a and b differ as sets (order-independent,
// duplicates counted as multiplicities).
func MustSameStringSet(t *testing.T, a, b []string, op string) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("%s: len(a)=%d len(b)=%d; a=%v b=%v", op, len(a), len(b), a, b)
	}
	aa := append([]string(nil), a...)
	bb := append([]string(nil), b...)
	sort.Strings(aa)
	sort.Strings(bb)
	for i := range aa {
		if aa[i] != bb[i] {
			t.Fatalf("%s: set mismatch at i=%d; a=%v b=%v", op, i, aa, bb)
		}
	}
}

// MustContainString fails the test if needle is not present in haystack.
func MustContainString(t *testing.T, haystack []string, needle string, op string) {
	t.Helper()
	for _, v := range haystack {
		if v == needle {
			return
		}
	}
	t.Fatalf("%s: %q not found in %v", op, needle, haystack)
}

// MustNotContainString fails the test if needle is present in haystack.
func MustNotContainString(t *testing.T, haystack []string, needle string, op string) {
	t.Helper()
	for _, v := range haystack {
		if v == needle {
			t.Fatalf("%s: %q unexpectedly found in %v", op, needle, haystack)
		}
	}
}
