package importer

import (
	"context"
	"strings"
	"testing"
)

func TestLoadTexts(t *testing.T) {
	t.Run("AddsNewRecords", testLoadTextsAdds)
	t.Run("SkipsMalformedLines", testLoadTextsSkipsMalformed)
	t.Run("ForceUpdatesExisting", testLoadTextsForceUpdates)
	t.Run("NoForceLeavesExistingUntouched", testLoadTextsNoForceNoop)
}

func testLoadTextsAdds(t *testing.T) {
	store := newFakeStore()
	input := `{"id": "doc-1", "content": "hello"}` + "\n" + `{"id": "doc-2", "content": "world"}` + "\n"
	report, err := LoadTexts(context.Background(), store, strings.NewReader(input), false, false)
	if err != nil {
		t.Fatalf("LoadTexts: %v", err)
	}
	if report.Added != 2 {
		t.Fatalf("got added=%d, want 2", report.Added)
	}
	b, err := store.GetByURL(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByURL: %v", err)
	}
	if b.Description != "hello" {
		t.Fatalf("got description %q", b.Description)
	}
	found := false
	for _, tag := range b.Tags {
		if tag.Value() == "_imported_" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected _imported_ tag")
	}
}

func testLoadTextsSkipsMalformed(t *testing.T) {
	store := newFakeStore()
	input := "not json\n" + `{"id": "doc-1", "content": "hello"}` + "\n"
	report, err := LoadTexts(context.Background(), store, strings.NewReader(input), false, false)
	if err != nil {
		t.Fatalf("LoadTexts: %v", err)
	}
	if report.Added != 1 {
		t.Fatalf("got added=%d, want 1 (malformed line skipped)", report.Added)
	}
}

func testLoadTextsForceUpdates(t *testing.T) {
	store := newFakeStore()
	first := `{"id": "doc-1", "content": "v1"}` + "\n"
	if _, err := LoadTexts(context.Background(), store, strings.NewReader(first), false, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	second := `{"id": "doc-1", "content": "v2"}` + "\n"
	report, err := LoadTexts(context.Background(), store, strings.NewReader(second), false, true)
	if err != nil {
		t.Fatalf("LoadTexts: %v", err)
	}
	if report.Updated != 1 {
		t.Fatalf("got updated=%d, want 1", report.Updated)
	}
	b, _ := store.GetByURL(context.Background(), "doc-1")
	if b.Description != "v2" {
		t.Fatalf("got description %q, want v2", b.Description)
	}
}

func testLoadTextsNoForceNoop(t *testing.T) {
	store := newFakeStore()
	first := `{"id": "doc-1", "content": "v1"}` + "\n"
	if _, err := LoadTexts(context.Background(), store, strings.NewReader(first), false, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	second := `{"id": "doc-1", "content": "v2"}` + "\n"
	report, err := LoadTexts(context.Background(), store, strings.NewReader(second), false, false)
	if err != nil {
		t.Fatalf("LoadTexts: %v", err)
	}
	if report.Added != 0 || report.Updated != 0 {
		t.Fatalf("got %+v, want no-op", report)
	}
	b, _ := store.GetByURL(context.Background(), "doc-1")
	if b.Description != "v1" {
		t.Fatalf("got description %q, want unchanged v1", b.Description)
	}
}
