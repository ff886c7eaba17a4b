// Package query implements the tag-specification algebra: small predicate
// objects that are simultaneously SQL fragment compilers (for the store)
// and in-memory matchers (for semantic-search post-filtering).
package query

import (
	"strings"

	"github.com/sysid/bkmr/internal/domain"
)

// Spec is a composable predicate over a Bookmark.
type Spec interface {
	// Match evaluates the predicate against an in-memory bookmark.
	Match(b *domain.Bookmark) bool
	// SQL compiles the predicate to a SQL fragment over the bookmarks
	// table plus its bound arguments. usesFTS is true when the fragment
	// requires joining against bookmarks_fts (TextSearch specs only).
	SQL() (fragment string, args []any, usesFTS bool)
	// FTSFragment compiles only the portion of the predicate that can run
	// against the contentless bookmarks_fts shadow table (TextSearch).
	// Non-text predicates (tag specs) contribute nothing here - they have
	// no column on bookmarks_fts - and are instead applied via Match once
	// rows are materialized from the main table (see storage.searchFTS).
	FTSFragment() (fragment string, args []any, ok bool)
}

// TextSearch matches via FTS5 MATCH against the bookmarks_fts shadow. An
// empty string degrades to a no-op (always matches, contributes no SQL).
type TextSearch struct{ Query string }

func (t TextSearch) Match(b *domain.Bookmark) bool {
	if strings.TrimSpace(t.Query) == "" {
		return true
	}
	q := strings.ToLower(t.Query)
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Description), q) ||
		strings.Contains(strings.ToLower(b.URL), q)
}

func (t TextSearch) SQL() (string, []any, bool) {
	if strings.TrimSpace(t.Query) == "" {
		return "", nil, false
	}
	return "bookmarks_fts MATCH ?", []any{t.Query}, true
}

func (t TextSearch) FTSFragment() (string, []any, bool) {
	if strings.TrimSpace(t.Query) == "" {
		return "", nil, false
	}
	return "bookmarks_fts MATCH ?", []any{t.Query}, true
}

// AllTags matches when the bookmark's tag set is a superset of Tags.
type AllTags struct{ Tags []domain.Tag }

func (a AllTags) Match(b *domain.Bookmark) bool { return domain.ContainsAll(b.Tags, a.Tags) }

func (a AllTags) SQL() (string, []any, bool) {
	if len(a.Tags) == 0 {
		return "", nil, false
	}
	var parts []string
	var args []any
	for _, t := range a.Tags {
		parts = append(parts, "tags LIKE ?")
		args = append(args, "%,"+t.Value()+",%")
	}
	return "(" + strings.Join(parts, " AND ") + ")", args, false
}

// FTSFragment is always a no-op: bookmarks_fts has no tags column, so an
// AllTags predicate contributes nothing to the FTS query and is instead
// applied to materialized rows via Match.
func (a AllTags) FTSFragment() (string, []any, bool) { return "", nil, false }

// AnyTags matches when the bookmark's tag set intersects Tags. An empty
// Tags set never matches.
type AnyTags struct{ Tags []domain.Tag }

func (a AnyTags) Match(b *domain.Bookmark) bool { return domain.ContainsAny(b.Tags, a.Tags) }

func (a AnyTags) SQL() (string, []any, bool) {
	if len(a.Tags) == 0 {
		return "1=0", nil, false
	}
	var parts []string
	var args []any
	for _, t := range a.Tags {
		parts = append(parts, "tags LIKE ?")
		args = append(args, "%,"+t.Value()+",%")
	}
	return "(" + strings.Join(parts, " OR ") + ")", args, false
}

// FTSFragment is a no-op; see AllTags.FTSFragment.
func (a AnyTags) FTSFragment() (string, []any, bool) { return "", nil, false }

// ExactTags matches when the bookmark's tag set equals Tags exactly. When
// present in a query it supersedes any AllTags/AnyTags specs composed
// alongside it (see Query.WithSpec).
type ExactTags struct{ Tags []domain.Tag }

func (e ExactTags) Match(b *domain.Bookmark) bool { return domain.EqualSet(b.Tags, e.Tags) }

func (e ExactTags) SQL() (string, []any, bool) {
	return "tags = ?", []any{domain.FormatTags(e.Tags)}, false
}

// FTSFragment is a no-op; see AllTags.FTSFragment.
func (e ExactTags) FTSFragment() (string, []any, bool) { return "", nil, false }

// Not negates a spec.
type Not struct{ Spec Spec }

func (n Not) Match(b *domain.Bookmark) bool { return !n.Spec.Match(b) }

func (n Not) SQL() (string, []any, bool) {
	frag, args, usesFTS := n.Spec.SQL()
	if frag == "" {
		return "", nil, false
	}
	return "NOT (" + frag + ")", args, usesFTS
}

// FTSFragment negates the wrapped spec's FTS contribution, if any. A
// negated tag spec (e.g. Not(AllTags{...})) contributes nothing here for
// the same reason AllTags itself doesn't - it has no bookmarks_fts column
// - and is applied via Match instead.
func (n Not) FTSFragment() (string, []any, bool) {
	frag, args, ok := n.Spec.FTSFragment()
	if !ok {
		return "", nil, false
	}
	return "NOT (" + frag + ")", args, true
}

// And composes two specs conjunctively.
type And struct{ Left, Right Spec }

func (a And) Match(b *domain.Bookmark) bool { return a.Left.Match(b) && a.Right.Match(b) }

func (a And) SQL() (string, []any, bool) {
	lf, la, lfts := a.Left.SQL()
	rf, ra, rfts := a.Right.SQL()
	switch {
	case lf == "" && rf == "":
		return "", nil, false
	case lf == "":
		return rf, ra, rfts
	case rf == "":
		return lf, la, lfts
	}
	return "(" + lf + " AND " + rf + ")", append(append([]any{}, la...), ra...), lfts || rfts
}

// FTSFragment combines only each side's FTS-eligible contribution (see
// AllTags.FTSFragment): a tag predicate ANDed alongside a TextSearch spec
// drops out of the FTS query entirely here and is applied via Match once
// rows are materialized from the main table.
func (a And) FTSFragment() (string, []any, bool) {
	lf, la, lok := a.Left.FTSFragment()
	rf, ra, rok := a.Right.FTSFragment()
	switch {
	case !lok && !rok:
		return "", nil, false
	case !lok:
		return rf, ra, true
	case !rok:
		return lf, la, true
	}
	return "(" + lf + " AND " + rf + ")", append(append([]any{}, la...), ra...), true
}
