package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sysid/bkmr/internal/domain"
)

// fakeStore is a minimal in-memory Store double keyed by url.
type fakeStore struct {
	byURL  map[string]*domain.Bookmark
	nextID int64
}

func newFakeStore() *fakeStore { return &fakeStore{byURL: map[string]*domain.Bookmark{}} }

func (f *fakeStore) GetByURL(ctx context.Context, url string) (*domain.Bookmark, error) {
	b, ok := f.byURL[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, url)
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) GetAll(ctx context.Context) ([]*domain.Bookmark, error) {
	out := make([]*domain.Bookmark, 0, len(f.byURL))
	for _, b := range f.byURL {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStore) Add(ctx context.Context, b *domain.Bookmark) error {
	if _, exists := f.byURL[b.URL]; exists {
		return fmt.Errorf("%w: %s", domain.ErrBookmarkExists, b.URL)
	}
	f.nextID++
	b.ID = f.nextID
	cp := *b
	f.byURL[b.URL] = &cp
	return nil
}

func (f *fakeStore) Update(ctx context.Context, b *domain.Bookmark) error {
	cp := *b
	f.byURL[b.URL] = &cp
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) (bool, error) {
	for url, b := range f.byURL {
		if b.ID == id {
			delete(f.byURL, url)
			return true, nil
		}
	}
	return false, nil
}

// TestImportCycle reproduces spec §8 scenario 5 literally: first import
// inserts, a same-name conflict without --update fails, the same change
// with --update applies, and deleting the file plus --delete-missing
// tombstones the record.
func TestImportCycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.sh")
	write := func(body string) {
		content := "---\nname: s\n---\n" + body
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	read := func(p string) ([]byte, error) { return os.ReadFile(p) }

	store := newFakeStore()

	write("echo 1\n")
	report, err := ImportFiles(context.Background(), store, read, []string{path}, Options{})
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if report.Added != 1 || report.Updated != 0 || report.Deleted != 0 {
		t.Fatalf("got %+v, want (1,0,0)", report)
	}

	write("echo 2\n")
	_, err = ImportFiles(context.Background(), store, read, []string{path}, Options{})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("got %v, want DuplicateNameError", err)
	}

	report, err = ImportFiles(context.Background(), store, read, []string{path}, Options{Update: true})
	if err != nil {
		t.Fatalf("update import: %v", err)
	}
	if report.Added != 0 || report.Updated != 1 || report.Deleted != 0 {
		t.Fatalf("got %+v, want (0,1,0)", report)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	report, err = ImportFiles(context.Background(), store, read, []string{dir}, Options{DeleteMissing: true})
	if err != nil {
		t.Fatalf("delete-missing import: %v", err)
	}
	if report.Added != 0 || report.Updated != 0 || report.Deleted != 1 {
		t.Fatalf("got %+v, want (0,0,1)", report)
	}
}

// TestImportFilesDuplicateNameAcrossDifferentFiles mirrors original_source's
// test_import_files_duplicate_name_without_update: two distinct files that
// resolve to two distinct canonical urls but share the same frontmatter
// "name" must collide on name, not url.
func TestImportFilesDuplicateNameAcrossDifferentFiles(t *testing.T) {
	dir := t.TempDir()
	path1 := filepath.Join(dir, "duplicate.sh")
	path2 := filepath.Join(dir, "duplicate2.sh")
	if err := os.WriteFile(path1, []byte("---\nname: backup-database\n---\necho 1\n"), 0o644); err != nil {
		t.Fatalf("write duplicate.sh: %v", err)
	}
	if err := os.WriteFile(path2, []byte("---\nname: backup-database\n---\necho 2\n"), 0o644); err != nil {
		t.Fatalf("write duplicate2.sh: %v", err)
	}
	read := func(p string) ([]byte, error) { return os.ReadFile(p) }

	store := newFakeStore()
	_, err := ImportFiles(context.Background(), store, read, []string{dir}, Options{})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("got %v, want DuplicateNameError for two files sharing name %q", err, "backup-database")
	}

	all, _ := store.GetAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected exactly one bookmark to survive the collision, got %d", len(all))
	}
}

func TestImportFilesSkipsUnannotated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(path, []byte("just text, no frontmatter\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := newFakeStore()
	report, err := ImportFiles(context.Background(), store, os.ReadFile, []string{path}, Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Added != 0 {
		t.Fatalf("got %+v, want nothing added for a file without frontmatter", report)
	}
}
