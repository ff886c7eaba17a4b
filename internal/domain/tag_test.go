package domain

import (
	"errors"
	"testing"
)

func TestNewTag(t *testing.T) {
	t.Run("normalizes case and whitespace", testNewTagNormalizes)
	t.Run("rejects empty", testNewTagRejectsEmpty)
	t.Run("rejects comma", testNewTagRejectsComma)
	t.Run("rejects space", testNewTagRejectsSpace)
}

func testNewTagNormalizes(t *testing.T) {
	tag, err := NewTag("  Foo  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag.Value() != "foo" {
		t.Fatalf("got %q, want %q", tag.Value(), "foo")
	}
}

func testNewTagRejectsEmpty(t *testing.T) {
	if _, err := NewTag("   "); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("got %v, want ErrInvalidTag", err)
	}
}

func testNewTagRejectsComma(t *testing.T) {
	if _, err := NewTag("a,b"); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("got %v, want ErrInvalidTag", err)
	}
}

func testNewTagRejectsSpace(t *testing.T) {
	if _, err := NewTag("a b"); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("got %v, want ErrInvalidTag", err)
	}
}

func TestTagRoundTrip(t *testing.T) {
	for _, s := range []string{"zebra", "alpha", "mid"} {
		tag, err := NewTag(s)
		if err != nil {
			t.Fatalf("NewTag(%q): %v", s, err)
		}
		again, err := NewTag(tag.Value())
		if err != nil || again != tag {
			t.Fatalf("round trip failed for %q", s)
		}
	}
}

func TestFormatTags(t *testing.T) {
	a, _ := NewTag("zebra")
	b, _ := NewTag("alpha")
	c, _ := NewTag("mid")
	got := FormatTags([]Tag{a, b, c})
	want := ",alpha,mid,zebra,"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatTagsEmpty(t *testing.T) {
	if got := FormatTags(nil); got != ",," {
		t.Fatalf("got %q, want %q", got, ",,")
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	a, _ := NewTag("b")
	b, _ := NewTag("a")
	c, _ := NewTag("c")
	in := []Tag{a, b, c}
	out := ParseTagString(FormatTags(in))
	if len(out) != 3 {
		t.Fatalf("got %d tags, want 3", len(out))
	}
	if !ContainsAll(out, in) || !ContainsAll(in, out) {
		t.Fatalf("round trip set mismatch: %v vs %v", in, out)
	}
}

func TestContainsAllAndAny(t *testing.T) {
	a, _ := NewTag("a")
	b, _ := NewTag("b")
	c, _ := NewTag("c")
	have := []Tag{a, b}

	if !ContainsAll(have, []Tag{a}) {
		t.Fatal("expected ContainsAll(have, {a}) to be true")
	}
	if ContainsAll(have, []Tag{a, c}) {
		t.Fatal("expected ContainsAll(have, {a,c}) to be false")
	}
	if !ContainsAny(have, []Tag{c, b}) {
		t.Fatal("expected ContainsAny(have, {c,b}) to be true")
	}
	if ContainsAny(have, nil) {
		t.Fatal("expected ContainsAny(have, {}) to be false")
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags("Foo, bar,, Foo ")
	if len(got) != 2 {
		t.Fatalf("got %d tags, want 2 (deduped, empty dropped): %v", len(got), got)
	}
}
