package storage

import (
	"context"
	"fmt"

	"github.com/sysid/bkmr/internal/domain"
	"github.com/sysid/bkmr/internal/query"
)

// Search executes q: if it requires full-text search, the FTS shadow is
// queried first and rows materialized from the main table in rank order;
// otherwise the main table is scanned directly with the compiled
// predicate. Ties are broken by ascending id (spec §5 ordering guarantee).
func (s *Store) Search(ctx context.Context, q query.Query) ([]*domain.Bookmark, error) {
	if q.HasTextSearch() {
		return s.searchFTS(ctx, q)
	}
	return s.searchMain(ctx, q)
}

func (s *Store) searchMain(ctx context.Context, q query.Query) ([]*domain.Bookmark, error) {
	where, args := "1=1", []any{}
	if spec := q.Spec(); spec != nil {
		frag, specArgs, _ := spec.SQL()
		if frag != "" {
			where = frag
			args = specArgs
		}
	}

	orderBy := "id ASC"
	switch q.SortMode() {
	case query.SortByDateAsc:
		orderBy = "created_at ASC, id ASC"
	case query.SortByDateDesc:
		orderBy = "created_at DESC, id ASC"
	}

	sqlStr := fmt.Sprintf("SELECT %s FROM bookmarks WHERE %s ORDER BY %s", bookmarkColumns, where, orderBy)
	sqlStr, args = applyPaging(sqlStr, args, q)

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanAll(rows)
}

func (s *Store) searchFTS(ctx context.Context, q query.Query) ([]*domain.Bookmark, error) {
	spec := q.Spec()
	// Only the TextSearch portion of spec can run against bookmarks_fts -
	// it has no tags column, so any tag predicate ANDed alongside the text
	// search must NOT be spliced into this query string (it would fail at
	// runtime with "no such column: tags"). FTSFragment extracts just the
	// MATCH clause; the full spec, tags included, is still applied below
	// via Match once rows are materialized from the main table.
	frag, args, ok := spec.FTSFragment()
	if !ok {
		frag, args = "1=1", nil
	}

	// Paging is applied after the post-filter below, not in this query, so
	// rows dropped by Match never shorten or shift a page.
	ftsQuery := fmt.Sprintf("SELECT rowid FROM bookmarks_fts WHERE %s ORDER BY rank, rowid", frag)

	rows, err := s.db.QueryContext(ctx, ftsQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: fts search: %v", domain.ErrStoreFailure, err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: scan fts rowid: %v", domain.ErrStoreFailure, err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate fts rows: %v", domain.ErrStoreFailure, err)
	}

	out := make([]*domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		b, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		// Post-filter with every non-text spec the FTS fragment couldn't
		// express as SQL on its own table (e.g. a tag predicate ANDed
		// alongside TextSearch still needs evaluating against the main row).
		if spec != nil && !spec.Match(b) {
			continue
		}
		out = append(out, b)
	}
	if off := q.Offset(); off > 0 {
		if off > len(out) {
			off = len(out)
		}
		out = out[off:]
	}
	if lim := q.Limit(); lim > 0 && len(out) > lim {
		out = out[:lim]
	}
	return out, nil
}

func applyPaging(sqlStr string, args []any, q query.Query) (string, []any) {
	if q.Limit() > 0 {
		sqlStr += " LIMIT ?"
		args = append(args, q.Limit())
		if q.Offset() > 0 {
			sqlStr += " OFFSET ?"
			args = append(args, q.Offset())
		}
	} else if q.Offset() > 0 {
		sqlStr += " LIMIT -1 OFFSET ?"
		args = append(args, q.Offset())
	}
	return sqlStr, args
}
