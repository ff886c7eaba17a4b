package tagservice

import (
	"context"
	"testing"

	"github.com/sysid/bkmr/internal/domain"
	"github.com/sysid/bkmr/internal/storage"
)

type fakeTagStore struct {
	all       []storage.TagCount
	related   []storage.TagCount
	renamed   int
	merged    int
	lastFrom  domain.Tag
	lastTo    domain.Tag
	lastFroms []domain.Tag
}

func (f *fakeTagStore) GetAllTags(ctx context.Context) ([]storage.TagCount, error) { return f.all, nil }

func (f *fakeTagStore) GetRelatedTags(ctx context.Context, tag domain.Tag) ([]storage.TagCount, error) {
	return f.related, nil
}

func (f *fakeTagStore) RenameTag(ctx context.Context, from, to domain.Tag) (int, error) {
	f.lastFrom, f.lastTo = from, to
	return f.renamed, nil
}

func (f *fakeTagStore) MergeTags(ctx context.Context, froms []domain.Tag, to domain.Tag) (int, error) {
	f.lastFroms, f.lastTo = froms, to
	return f.merged, nil
}

func TestGetOrCreate(t *testing.T) {
	svc := New(&fakeTagStore{})
	tag, err := svc.GetOrCreate("  Go  ")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if tag.Value() != "go" {
		t.Fatalf("got %q, want normalized go", tag.Value())
	}
	if _, err := svc.GetOrCreate("has space"); err == nil {
		t.Fatal("expected error for an invalid tag")
	}
}

func TestRenameAndMergeDelegate(t *testing.T) {
	store := &fakeTagStore{renamed: 3, merged: 5}
	svc := New(store)
	from, _ := domain.NewTag("old")
	n, err := svc.Rename(context.Background(), from, "new")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if n != 3 || store.lastTo.Value() != "new" {
		t.Fatalf("got n=%d to=%q", n, store.lastTo.Value())
	}

	a, _ := domain.NewTag("a")
	b, _ := domain.NewTag("b")
	n, err = svc.Merge(context.Background(), []domain.Tag{a, b}, "merged")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if n != 5 || store.lastTo.Value() != "merged" {
		t.Fatalf("got n=%d to=%q", n, store.lastTo.Value())
	}
}

func TestRenameInvalidTarget(t *testing.T) {
	svc := New(&fakeTagStore{})
	from, _ := domain.NewTag("old")
	if _, err := svc.Rename(context.Background(), from, "bad tag"); err == nil {
		t.Fatal("expected error for invalid rename target")
	}
}
