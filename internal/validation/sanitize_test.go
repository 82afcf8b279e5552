package validation_test

import (
	"strings"
	"testing"

	"github.com/vaxcare/vaxcare-backend/internal/validation"
)

func TestClean_TrimsWhitespace(t *testing.T) {
	if got := validation.Clean("  hello  "); got != "hello" {
		t.Errorf("Clean = %q, want %q", got, "hello")
	}
}

func TestClean_StripsAngleBrackets(t *testing.T) {
	if got := validation.Clean(`<script>alert(1)</script>`); got != "scriptalert(1)/script" {
		t.Errorf("Clean = %q, want %q", got, "scriptalert(1)/script")
	}
}

func TestClean_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 20000)
	if got := validation.Clean(long); len(got) != 10000 {
		t.Errorf("len(Clean) = %d, want 10000", len(got))
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"  plain  ",
		"<b>bold</b>",
		strings.Repeat("x ", 9000), // truncation leaves a trailing space to re-trim
		"",
		"  <  >  ",
	}
	for _, in := range inputs {
		once := validation.Clean(in)
		twice := validation.Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %.20q: %q != %q", in, once, twice)
		}
	}
}

func TestCleanPtr_NilIsNoop(t *testing.T) {
	validation.CleanPtr(nil) // must not panic

	s := " <x> "
	validation.CleanPtr(&s)
	if s != "x" {
		t.Errorf("CleanPtr = %q, want %q", s, "x")
	}
}
