package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/sysid/bkmr/internal/domain"
)

// TagCount pairs a tag with how many bookmarks carry it.
type TagCount struct {
	Tag   domain.Tag
	Count int
}

// GetAllTags returns every distinct tag across the corpus with its usage
// count, sorted by count descending then name ascending.
func (s *Store) GetAllTags(ctx context.Context) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tags FROM bookmarks")
	if err != nil {
		return nil, fmt.Errorf("%w: get all tags: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var tagsStr string
		if err := rows.Scan(&tagsStr); err != nil {
			return nil, fmt.Errorf("%w: scan tags: %v", domain.ErrStoreFailure, err)
		}
		for _, t := range domain.ParseTagString(tagsStr) {
			counts[t.Value()]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tag rows: %v", domain.ErrStoreFailure, err)
	}
	return sortedTagCounts(counts), nil
}

// GetRelatedTags returns every tag that co-occurs with tag on at least one
// bookmark, excluding tag itself, sorted by count descending then name
// ascending.
func (s *Store) GetRelatedTags(ctx context.Context, tag domain.Tag) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tags FROM bookmarks WHERE tags LIKE ?", "%,"+tag.Value()+",%")
	if err != nil {
		return nil, fmt.Errorf("%w: get related tags: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var tagsStr string
		if err := rows.Scan(&tagsStr); err != nil {
			return nil, fmt.Errorf("%w: scan tags: %v", domain.ErrStoreFailure, err)
		}
		for _, t := range domain.ParseTagString(tagsStr) {
			if t.Value() == tag.Value() {
				continue
			}
			counts[t.Value()]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tag rows: %v", domain.ErrStoreFailure, err)
	}
	return sortedTagCounts(counts), nil
}

func sortedTagCounts(counts map[string]int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for value, n := range counts {
		t, _ := domain.NewTag(value)
		out = append(out, TagCount{Tag: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag.Value() < out[j].Tag.Value()
	})
	return out
}

// RenameTag rewrites from to to on every bookmark containing from,
// returning the number of affected rows.
func (s *Store) RenameTag(ctx context.Context, from, to domain.Tag) (int, error) {
	return s.rewriteTags(ctx, []domain.Tag{from}, to)
}

// MergeTags collapses every tag in froms into to, returning the number of
// affected rows.
func (s *Store) MergeTags(ctx context.Context, froms []domain.Tag, to domain.Tag) (int, error) {
	return s.rewriteTags(ctx, froms, to)
}

func (s *Store) rewriteTags(ctx context.Context, froms []domain.Tag, to domain.Tag) (int, error) {
	likeAny := make([]string, len(froms))
	args := make([]any, len(froms))
	for i, f := range froms {
		likeAny[i] = "tags LIKE ?"
		args[i] = "%," + f.Value() + ",%"
	}
	where := likeAny[0]
	for _, clause := range likeAny[1:] {
		where += " OR " + clause
	}
	rows, err := s.db.QueryContext(ctx, "SELECT "+bookmarkColumns+" FROM bookmarks WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: rewrite tags scan: %v", domain.ErrStoreFailure, err)
	}
	affected, err := scanAll(rows)
	rows.Close()
	if err != nil {
		return 0, err
	}

	fromSet := make(map[string]struct{}, len(froms))
	for _, f := range froms {
		fromSet[f.Value()] = struct{}{}
	}
	n := 0
	for _, b := range affected {
		var kept []domain.Tag
		for _, t := range b.Tags {
			if _, drop := fromSet[t.Value()]; drop {
				continue
			}
			kept = append(kept, t)
		}
		kept = append(kept, to)
		b.Tags = kept
		if err := s.Update(ctx, b); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
