// Package service implements the orchestrator: the only component that
// mutates the store, the embedder, and the clipboard/stdout together
// (SPEC_FULL.md §4.I).
package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sysid/bkmr/internal/action"
	"github.com/sysid/bkmr/internal/domain"
	"github.com/sysid/bkmr/internal/embedding"
	"github.com/sysid/bkmr/internal/fetchmeta"
	"github.com/sysid/bkmr/internal/importer"
	"github.com/sysid/bkmr/internal/query"
)

// Store is the subset of internal/storage.Store the orchestrator needs.
type Store interface {
	importer.Store
	GetByID(ctx context.Context, id int64) (*domain.Bookmark, error)
	RecordAccess(ctx context.Context, id int64) error
	Search(ctx context.Context, q query.Query) ([]*domain.Bookmark, error)
	GetRandom(ctx context.Context, n int) ([]*domain.Bookmark, error)
	GetEmbeddableWithoutEmbeddings(ctx context.Context) ([]*domain.Bookmark, error)
	GetForcedBackfillCandidates(ctx context.Context) ([]*domain.Bookmark, error)
}

// MetadataFetcher is the external-collaborator contract for fetch_metadata.
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) (fetchmeta.Metadata, error)
}

// Service is the bookmark orchestrator.
type Service struct {
	Store    Store
	Embedder embedding.Embedder
	Fetcher  MetadataFetcher
	Dispatch *action.Dispatcher
}

// New wires the orchestrator's collaborators. Fetcher may be nil if
// fetch_metadata is never requested; Embedder defaults to a null embedder
// upstream when no API key is configured.
func New(store Store, embedder embedding.Embedder, fetcher MetadataFetcher, dispatch *action.Dispatcher) *Service {
	return &Service{Store: store, Embedder: embedder, Fetcher: fetcher, Dispatch: dispatch}
}

// AddOptions configures Add.
type AddOptions struct {
	Title, Description string
	Tags                []domain.Tag
	Embeddable          bool
	FetchMetadata       bool
}

// Add creates a new bookmark. It fails BookmarkExists on a duplicate url.
// Metadata-fetch and embedding failures are logged and degrade the result
// gracefully rather than aborting the write (spec §4.I failure semantics).
func (s *Service) Add(ctx context.Context, url string, opts AddOptions) (*domain.Bookmark, error) {
	b := &domain.Bookmark{
		URL:         url,
		Title:       opts.Title,
		Description: opts.Description,
		Tags:        opts.Tags,
		Embeddable:  opts.Embeddable,
	}

	if opts.FetchMetadata && s.Fetcher != nil && isHTTP(url) {
		meta, err := s.Fetcher.Fetch(ctx, url)
		if err != nil {
			log.Printf("⚠️ fetch metadata for %s: %v", url, err)
		} else {
			if b.Title == "" {
				b.Title = meta.Title
			}
			if b.Description == "" {
				b.Description = meta.Description
			}
		}
	}

	s.maybeEmbed(ctx, b)

	if err := s.Store.Add(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update persists every mutable field of b, regenerating the embedding if
// the content fingerprint changed or forceEmbedding is set.
func (s *Service) Update(ctx context.Context, b *domain.Bookmark, forceEmbedding bool) error {
	oldFingerprint := b.ContentHash
	if forceEmbedding || fingerprintChanged(oldFingerprint, b) {
		s.maybeEmbed(ctx, b)
	}
	return s.Store.Update(ctx, b)
}

func fingerprintChanged(oldFingerprint []byte, b *domain.Bookmark) bool {
	newFP := embedding.Fingerprint(b)
	return string(oldFingerprint) != string(newFP[:])
}

func (s *Service) maybeEmbed(ctx context.Context, b *domain.Bookmark) {
	if !b.Embeddable || s.Embedder == nil {
		return
	}
	vec, err := s.Embedder.Embed(ctx, b.ContentForEmbedding())
	if err != nil {
		log.Printf("⚠️ embed bookmark %s: %v", b.URL, err)
		return
	}
	if vec == nil {
		return
	}
	b.Embedding = embedding.SerializeRaw(vec)
	fp := embedding.Fingerprint(b)
	b.ContentHash = fp[:]
}

// Delete removes bookmark id. It is idempotent.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Store.Delete(ctx, id)
}

// RecordAccess increments id's access counter and bumps its timestamp.
func (s *Service) RecordAccess(ctx context.Context, id int64) error {
	return s.Store.RecordAccess(ctx, id)
}

// Search delegates to the query engine.
func (s *Service) Search(ctx context.Context, q query.Query) ([]*domain.Bookmark, error) {
	return s.Store.Search(ctx, q)
}

// SearchByText is a convenience wrapper over Search for a plain text query.
func (s *Service) SearchByText(ctx context.Context, text string) ([]*domain.Bookmark, error) {
	return s.Search(ctx, query.New().WithSpec(query.TextSearch{Query: text}))
}

// ScoredBookmark pairs a bookmark with its similarity to a semantic query.
type ScoredBookmark struct {
	Bookmark   *domain.Bookmark
	Similarity float64
}

// SemanticSearch embeds query, then ranks every embeddable bookmark with a
// stored embedding by cosine similarity, descending, truncated to limit.
func (s *Service) SemanticSearch(ctx context.Context, queryText string, limit int) ([]ScoredBookmark, error) {
	if s.Embedder == nil {
		return nil, nil
	}
	qvec, err := s.Embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if qvec == nil {
		return nil, nil
	}

	all, err := s.Store.Search(ctx, query.New())
	if err != nil {
		return nil, err
	}

	var scored []ScoredBookmark
	for _, b := range all {
		if !b.Embeddable || len(b.Embedding) == 0 {
			continue
		}
		vec, err := embedding.DeserializeRaw(b.Embedding)
		if err != nil {
			continue
		}
		sim := embedding.CosineSimilarity(qvec, vec)
		scored = append(scored, ScoredBookmark{Bookmark: b, Similarity: sim})
	}

	sortScoredDescending(scored)
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func sortScoredDescending(scored []ScoredBookmark) {
	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].Similarity > scored[j-1].Similarity; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}
}

// SetEmbeddable flips id's embeddable flag.
func (s *Service) SetEmbeddable(ctx context.Context, id int64, embeddable bool) error {
	b, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.Embeddable = embeddable
	return s.Store.Update(ctx, b)
}

// AddTags adds tags to bookmark id.
func (s *Service) AddTags(ctx context.Context, id int64, tags []domain.Tag) error {
	b, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.AddTags(tags)
	return s.Store.Update(ctx, b)
}

// RemoveTags removes tags from bookmark id.
func (s *Service) RemoveTags(ctx context.Context, id int64, tags []domain.Tag) error {
	b, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.RemoveTags(tags)
	return s.Store.Update(ctx, b)
}

// ReplaceTags replaces bookmark id's entire tag set.
func (s *Service) ReplaceTags(ctx context.Context, id int64, tags []domain.Tag) error {
	b, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.ReplaceTags(tags)
	return s.Store.Update(ctx, b)
}

// BackfillEmbeddings generates embeddings for every embeddable bookmark
// that doesn't already have one. dryRun counts without writing.
func (s *Service) BackfillEmbeddings(ctx context.Context, dryRun bool) (int, error) {
	candidates, err := s.Store.GetEmbeddableWithoutEmbeddings(ctx)
	if err != nil {
		return 0, err
	}
	return s.backfill(ctx, candidates, dryRun)
}

// ForcedBackfillEmbeddings re-embeds every forced-backfill candidate (spec
// §4.H), including bookmarks that already have an embedding.
func (s *Service) ForcedBackfillEmbeddings(ctx context.Context, dryRun bool) (int, error) {
	candidates, err := s.Store.GetForcedBackfillCandidates(ctx)
	if err != nil {
		return 0, err
	}
	return s.backfill(ctx, candidates, dryRun)
}

func (s *Service) backfill(ctx context.Context, candidates []*domain.Bookmark, dryRun bool) (int, error) {
	n := 0
	for _, b := range candidates {
		if dryRun {
			n++
			continue
		}
		s.maybeEmbed(ctx, b)
		if err := s.Store.Update(ctx, b); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ImportFiles delegates to the import engine.
func (s *Service) ImportFiles(ctx context.Context, readFile func(string) ([]byte, error), paths []string, opts importer.Options) (importer.Report, error) {
	return importer.ImportFiles(ctx, s.Store, readFile, paths, opts)
}

// LoadTexts delegates to the NDJSON import path.
func (s *Service) LoadTexts(ctx context.Context, r io.Reader, dryRun, force bool) (importer.Report, error) {
	return importer.LoadTexts(ctx, s.Store, r, dryRun, force)
}

// ImportBrowserHTML delegates to the browser-export import path.
func (s *Service) ImportBrowserHTML(ctx context.Context, r io.Reader, update, dryRun bool) (importer.Report, error) {
	return importer.ImportBrowserHTML(ctx, s.Store, r, update, dryRun)
}

// Surprise returns up to n bookmarks chosen at random.
func (s *Service) Surprise(ctx context.Context, n int) ([]*domain.Bookmark, error) {
	return s.Store.GetRandom(ctx, n)
}

// Open records access for bookmark id, then resolves and dispatches its
// action. A dispatch failure is returned to the caller but does not roll
// back the preceding record_access (spec §4.I failure semantics).
func (s *Service) Open(ctx context.Context, id int64) error {
	b, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.RecordAccess(ctx, id); err != nil {
		return err
	}
	return s.Dispatch.Dispatch(b)
}

func isHTTP(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// RunBackfillLoop runs BackfillEmbeddings every interval until ctx is
// cancelled, gated on an embedder being configured. Grounded on the
// teacher's cmd/server/main.go ticker loop, generalized from its hardcoded
// OpenAI-key gate and batch-of-5 cap into a configuration-driven interval.
func (s *Service) RunBackfillLoop(ctx context.Context, interval time.Duration) {
	if s.Embedder == nil {
		log.Println("⚠️ no embedder configured - background backfill disabled")
		return
	}
	log.Printf("✅ background backfill started - checking every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runID := uuid.NewString()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.BackfillEmbeddings(ctx, false)
			if err != nil {
				log.Printf("❌ [%s] background backfill failed: %v", runID, err)
				continue
			}
			if n > 0 {
				log.Printf("📊 [%s] background backfill processed %d bookmarks", runID, n)
			}
		}
	}
}
