package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sysid/bkmr/internal/domain"
)

// GetByID returns the bookmark with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+bookmarkColumns+" FROM bookmarks WHERE id = ?", id)
	b, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: bookmark id %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get by id: %v", domain.ErrStoreFailure, err)
	}
	return b, nil
}

// GetByURL returns the bookmark with the given url, or ErrNotFound.
func (s *Store) GetByURL(ctx context.Context, url string) (*domain.Bookmark, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+bookmarkColumns+" FROM bookmarks WHERE url = ?", url)
	b, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: bookmark url %q", domain.ErrNotFound, url)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get by url: %v", domain.ErrStoreFailure, err)
	}
	return b, nil
}

// ExistsByURL reports whether a bookmark with the given url exists.
func (s *Store) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM bookmarks WHERE url = ?", url).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("%w: exists by url: %v", domain.ErrStoreFailure, err)
	}
	return n > 0, nil
}

// GetAll returns every bookmark, ordered by id ascending for deterministic
// output.
func (s *Store) GetAll(ctx context.Context) ([]*domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+bookmarkColumns+" FROM bookmarks ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("%w: get all: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanAll(rows)
}

func scanAll(rows *sql.Rows) ([]*domain.Bookmark, error) {
	var out []*domain.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", domain.ErrStoreFailure, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", domain.ErrStoreFailure, err)
	}
	return out, nil
}

// Add assigns b an id and timestamps and persists it. It fails with
// ErrBookmarkExists if b.URL is already present.
func (s *Store) Add(ctx context.Context, b *domain.Bookmark) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if err := b.Validate(); err != nil {
		return err
	}

	return retryWithBackoff(ctx, 3, func() error {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO bookmarks (url, title, description, tags, access_count, created_at, updated_at, embedding, content_hash, embeddable, file_path, file_mtime, file_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.URL, b.Title, b.Description, domain.FormatTags(b.Tags), b.AccessCount,
			b.CreatedAt.Format(time.RFC3339), b.UpdatedAt.Format(time.RFC3339),
			b.Embedding, b.ContentHash, boolToInt(b.Embeddable),
			b.FilePath, b.FileMtime, b.FileHash)
		if isUniqueConstraint(err) {
			return fmt.Errorf("%w: url %q", domain.ErrBookmarkExists, b.URL)
		}
		if err != nil {
			return fmt.Errorf("%w: insert bookmark: %v", domain.ErrStoreFailure, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: read last insert id: %v", domain.ErrStoreFailure, err)
		}
		b.ID = id
		return nil
	})
}

// Update persists every mutable field of b, keyed by id.
func (s *Store) Update(ctx context.Context, b *domain.Bookmark) error {
	b.UpdatedAt = time.Now().UTC()
	if err := b.Validate(); err != nil {
		return err
	}
	return retryWithBackoff(ctx, 3, func() error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE bookmarks SET url = ?, title = ?, description = ?, tags = ?, access_count = ?,
				updated_at = ?, embedding = ?, content_hash = ?, embeddable = ?,
				file_path = ?, file_mtime = ?, file_hash = ?
			WHERE id = ?`,
			b.URL, b.Title, b.Description, domain.FormatTags(b.Tags), b.AccessCount,
			b.UpdatedAt.Format(time.RFC3339), b.Embedding, b.ContentHash, boolToInt(b.Embeddable),
			b.FilePath, b.FileMtime, b.FileHash, b.ID)
		if isUniqueConstraint(err) {
			return fmt.Errorf("%w: url %q", domain.ErrBookmarkExists, b.URL)
		}
		if err != nil {
			return fmt.Errorf("%w: update bookmark: %v", domain.ErrStoreFailure, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: read rows affected: %v", domain.ErrStoreFailure, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: bookmark id %d", domain.ErrNotFound, b.ID)
		}
		return nil
	})
}

// Delete removes the bookmark with the given id. It reports whether a row
// was actually deleted, and is idempotent: deleting an absent id returns
// (false, nil).
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("%w: delete bookmark: %v", domain.ErrStoreFailure, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: read rows affected: %v", domain.ErrStoreFailure, err)
	}
	return n > 0, nil
}

// RecordAccess increments access_count and bumps updated_at for id.
func (s *Store) RecordAccess(ctx context.Context, id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, "UPDATE bookmarks SET access_count = access_count + 1, updated_at = ? WHERE id = ?", now, id)
	if err != nil {
		return fmt.Errorf("%w: record access: %v", domain.ErrStoreFailure, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: read rows affected: %v", domain.ErrStoreFailure, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: bookmark id %d", domain.ErrNotFound, id)
	}
	return nil
}

// GetRandom returns up to n bookmarks chosen at random.
func (s *Store) GetRandom(ctx context.Context, n int) ([]*domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+bookmarkColumns+" FROM bookmarks ORDER BY RANDOM() LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("%w: get random: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanAll(rows)
}

// GetWithoutEmbeddings returns every bookmark with no stored embedding,
// regardless of Embeddable.
func (s *Store) GetWithoutEmbeddings(ctx context.Context) ([]*domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+bookmarkColumns+" FROM bookmarks WHERE embedding IS NULL ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("%w: get without embeddings: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanAll(rows)
}

// GetEmbeddableWithoutEmbeddings returns every embeddable bookmark with no
// stored embedding - the backfill working set.
func (s *Store) GetEmbeddableWithoutEmbeddings(ctx context.Context) ([]*domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+bookmarkColumns+" FROM bookmarks WHERE embedding IS NULL AND embeddable = 1 ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("%w: get embeddable without embeddings: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanAll(rows)
}

// GetForcedBackfillCandidates returns every embeddable bookmark except
// those tagged _imported_ (bulk-imported text dumps are excluded from
// forced backfill; see SPEC_FULL.md §4.H).
func (s *Store) GetForcedBackfillCandidates(ctx context.Context) ([]*domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+bookmarkColumns+" FROM bookmarks WHERE embeddable = 1 AND tags NOT LIKE ? ORDER BY id ASC", "%,_imported_,%")
	if err != nil {
		return nil, fmt.Errorf("%w: get forced backfill candidates: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()
	return scanAll(rows)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueConstraint reports whether err came from a UNIQUE constraint
// violation. go-libsql surfaces these as plain error strings rather than a
// typed error, so substring matching on the sqlite message is what's
// actually available here.
func isUniqueConstraint(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
