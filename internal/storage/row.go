package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sysid/bkmr/internal/domain"
)

const bookmarkColumns = "id, url, title, description, tags, access_count, created_at, updated_at, embedding, content_hash, embeddable, file_path, file_mtime, file_hash"

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row scanner) (*domain.Bookmark, error) {
	var (
		b                    domain.Bookmark
		tagsStr              string
		createdAt, updatedAt string
		embeddable           int
		embedding            []byte
		contentHash          []byte
		filePath             sql.NullString
		fileMtime            sql.NullInt64
		fileHash             sql.NullString
	)
	if err := row.Scan(&b.ID, &b.URL, &b.Title, &b.Description, &tagsStr, &b.AccessCount,
		&createdAt, &updatedAt, &embedding, &contentHash, &embeddable,
		&filePath, &fileMtime, &fileHash); err != nil {
		return nil, err
	}

	b.Tags = domain.ParseTagString(tagsStr)
	b.Embeddable = embeddable != 0
	b.Embedding = embedding
	b.ContentHash = contentHash

	var err error
	b.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: parse created_at: %v", domain.ErrStoreFailure, err)
	}
	b.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: parse updated_at: %v", domain.ErrStoreFailure, err)
	}

	if filePath.Valid {
		v := filePath.String
		b.FilePath = &v
	}
	if fileMtime.Valid {
		v := fileMtime.Int64
		b.FileMtime = &v
	}
	if fileHash.Valid {
		v := fileHash.String
		b.FileHash = &v
	}
	return &b, nil
}
