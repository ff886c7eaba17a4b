package query

import (
	"testing"

	"github.com/sysid/bkmr/internal/domain"
)

func tag(t *testing.T, s string) domain.Tag {
	t.Helper()
	tg, err := domain.NewTag(s)
	if err != nil {
		t.Fatalf("NewTag(%q): %v", s, err)
	}
	return tg
}

func TestAllTagsAndNot(t *testing.T) {
	a := tag(t, "a")
	b := &domain.Bookmark{Tags: []domain.Tag{a}}
	spec := And{Left: AllTags{Tags: []domain.Tag{a}}, Right: Not{Spec: AllTags{Tags: []domain.Tag{a}}}}
	if spec.Match(b) {
		t.Fatal("AllTags(S) AND NOT AllTags(S) must match nothing")
	}
}

func TestAnyTagsEmptyMatchesNothing(t *testing.T) {
	b := &domain.Bookmark{Tags: []domain.Tag{tag(t, "a")}}
	if (AnyTags{}).Match(b) {
		t.Fatal("AnyTags(empty) must match nothing")
	}
}

func TestExactTagsSupersedesEarlierTagSpec(t *testing.T) {
	a := tag(t, "a")
	b := tag(t, "b")
	q := New().WithSpec(AllTags{Tags: []domain.Tag{a}}).WithSpec(ExactTags{Tags: []domain.Tag{b}})
	frag, args, _ := q.Spec().SQL()
	if frag != "tags = ?" || len(args) != 1 {
		t.Fatalf("expected ExactTags to fully supersede AllTags, got frag=%q args=%v", frag, args)
	}
}

func TestTextSearchEmptyIsNoop(t *testing.T) {
	frag, _, usesFTS := (TextSearch{Query: ""}).SQL()
	if frag != "" || usesFTS {
		t.Fatalf("expected empty TextSearch to compile to nothing, got frag=%q usesFTS=%v", frag, usesFTS)
	}
}

func TestQueryWithSpecConjoins(t *testing.T) {
	a := tag(t, "a")
	q := New().WithSpec(TextSearch{Query: "hello"}).WithSpec(AllTags{Tags: []domain.Tag{a}})
	if !q.HasTextSearch() {
		t.Fatal("expected composed query to still require FTS")
	}
	frag, args, _ := q.Spec().SQL()
	if frag == "" || len(args) != 2 {
		t.Fatalf("expected conjoined fragment with 2 args, got frag=%q args=%v", frag, args)
	}
}

// TestFTSFragmentExcludesTagPredicate guards against re-introducing a tag
// predicate (no "tags" column on bookmarks_fts) into the query executed
// directly against the FTS shadow table: only the TextSearch clause may
// appear there, even when a tag spec is ANDed into the same query.
func TestFTSFragmentExcludesTagPredicate(t *testing.T) {
	a := tag(t, "a")
	q := New().WithSpec(TextSearch{Query: "hello"}).WithSpec(AllTags{Tags: []domain.Tag{a}})
	frag, args, ok := q.Spec().FTSFragment()
	if !ok {
		t.Fatal("expected an FTS fragment from the TextSearch half of the query")
	}
	if frag != "bookmarks_fts MATCH ?" {
		t.Fatalf("expected FTSFragment to contain only the MATCH clause, got %q", frag)
	}
	if len(args) != 1 || args[0] != "hello" {
		t.Fatalf("expected a single bound MATCH argument, got %v", args)
	}
	// The excluded tag predicate must still be enforceable in-memory.
	matching := &domain.Bookmark{Title: "hello", Tags: []domain.Tag{a}}
	nonMatching := &domain.Bookmark{Title: "hello"}
	if !q.Spec().Match(matching) {
		t.Fatal("expected the full spec to still match a bookmark carrying the required tag")
	}
	if q.Spec().Match(nonMatching) {
		t.Fatal("expected the full spec to reject a bookmark missing the required tag")
	}
}
