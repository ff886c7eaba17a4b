package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sysid/bkmr/internal/action"
	"github.com/sysid/bkmr/internal/domain"
	"github.com/sysid/bkmr/internal/embedding"
	"github.com/sysid/bkmr/internal/query"
	"github.com/sysid/bkmr/internal/service"
)

type memStore struct {
	byID map[int64]*domain.Bookmark
	next int64
}

func newMemStore() *memStore { return &memStore{byID: map[int64]*domain.Bookmark{}} }

func (m *memStore) GetByURL(ctx context.Context, url string) (*domain.Bookmark, error) {
	for _, b := range m.byID {
		if b.URL == url {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) GetAll(ctx context.Context) ([]*domain.Bookmark, error) {
	var out []*domain.Bookmark
	for _, b := range m.byID {
		out = append(out, b)
	}
	return out, nil
}

func (m *memStore) Add(ctx context.Context, b *domain.Bookmark) error {
	m.next++
	b.ID = m.next
	m.byID[b.ID] = b
	return nil
}

func (m *memStore) Update(ctx context.Context, b *domain.Bookmark) error {
	if _, ok := m.byID[b.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[b.ID] = b
	return nil
}

func (m *memStore) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (m *memStore) RecordAccess(ctx context.Context, id int64) error { return nil }

func (m *memStore) Search(ctx context.Context, q query.Query) ([]*domain.Bookmark, error) {
	return m.GetAll(ctx)
}

func (m *memStore) GetRandom(ctx context.Context, n int) ([]*domain.Bookmark, error) {
	return m.GetAll(ctx)
}

func (m *memStore) GetEmbeddableWithoutEmbeddings(ctx context.Context) ([]*domain.Bookmark, error) {
	return nil, nil
}

func (m *memStore) GetForcedBackfillCandidates(ctx context.Context) ([]*domain.Bookmark, error) {
	return nil, nil
}

func newTestServer() *Server {
	store := newMemStore()
	dispatch := &action.Dispatcher{
		Clipboard: action.SystemClipboard{},
		Opener:    action.OSOpener{},
		Shell:     action.InheritedShellRunner{},
	}
	svc := service.New(store, embedding.NullEmbedder{}, nil, dispatch)
	return New(svc)
}

func TestAddAndGet(t *testing.T) {
	s := newTestServer()

	body := `{"url":"https://example.com","title":"Example","tags":["go","web"]}`
	req := httptest.NewRequest(http.MethodPost, "/bookmarks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Bookmark
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/bookmarks/1", nil)
	getRec := httptest.NewRecorder()
	s.echo.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getRec.Code)
	}
}

func TestGetMissingReturns404(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/bookmarks/99", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
