package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestGenerateRandByteArray_Length(t *testing.T) {
	const n = 24
	buf := GenerateRandByteArray(n)
	if len(buf) != n {
		t.Fatalf("expected length %d, got %d", n, len(buf))
	}
}

func TestGenerateRandByteArray_EntropyHint(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	if string(a) == string(b) {
		t.Logf("warning: two random buffers are identical; extremely unlikely")
	}
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("login: %w", ErrUnauthorized)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrapped error must match ErrUnauthorized")
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatalf("wrapped error must not match ErrForbidden")
	}
}

func TestSessionKeys_ContainsAllPersistedKeys(t *testing.T) {
	want := map[string]bool{TokenKey: true, UserKey: true, RoleKey: true}
	if len(SessionKeys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(SessionKeys))
	}
	for _, k := range SessionKeys {
		if !want[k] {
			t.Fatalf("unexpected key %q", k)
		}
	}
}
