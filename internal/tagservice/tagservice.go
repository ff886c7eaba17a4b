// Package tagservice wraps the storage package's tag-aggregation queries
// behind the richer contract SPEC_FULL.md §4.D describes. Tags are not a
// separate table row in this schema (they live only inside bookmarks.tags),
// so GetOrCreate is find-or-create in name only - it exists to mirror the
// pattern grounded on the pack's tag service, not its storage model.
package tagservice

import (
	"context"
	"fmt"

	"github.com/sysid/bkmr/internal/domain"
	"github.com/sysid/bkmr/internal/storage"
)

// Store is the subset of internal/storage.Store the tag service depends on.
type Store interface {
	GetAllTags(ctx context.Context) ([]storage.TagCount, error)
	GetRelatedTags(ctx context.Context, tag domain.Tag) ([]storage.TagCount, error)
	RenameTag(ctx context.Context, from, to domain.Tag) (int, error)
	MergeTags(ctx context.Context, froms []domain.Tag, to domain.Tag) (int, error)
}

// Service is the tag-service component.
type Service struct {
	store Store
}

// New wraps store behind the tag-service contract.
func New(store Store) *Service {
	return &Service{store: store}
}

// GetOrCreate parses and normalizes name into a Tag. There is no backing
// row to create or find; construction failure is the only error case.
func (s *Service) GetOrCreate(name string) (domain.Tag, error) {
	return domain.NewTag(name)
}

// AllWithCounts returns every distinct tag across the corpus with its usage
// count, sorted by count descending then name ascending.
func (s *Service) AllWithCounts(ctx context.Context) ([]storage.TagCount, error) {
	return s.store.GetAllTags(ctx)
}

// RelatedTo returns every tag co-occurring with tag, excluding tag itself.
func (s *Service) RelatedTo(ctx context.Context, tag domain.Tag) ([]storage.TagCount, error) {
	return s.store.GetRelatedTags(ctx, tag)
}

// Rename rewrites from to to on every bookmark containing from.
func (s *Service) Rename(ctx context.Context, from domain.Tag, toName string) (int, error) {
	to, err := domain.NewTag(toName)
	if err != nil {
		return 0, fmt.Errorf("rename target: %w", err)
	}
	return s.store.RenameTag(ctx, from, to)
}

// Merge collapses every tag in froms into a single destination tag.
func (s *Service) Merge(ctx context.Context, froms []domain.Tag, intoName string) (int, error) {
	into, err := domain.NewTag(intoName)
	if err != nil {
		return 0, fmt.Errorf("merge target: %w", err)
	}
	return s.store.MergeTags(ctx, froms, into)
}
