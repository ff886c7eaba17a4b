package importer

import (
	"context"
	"strings"
	"testing"
)

const netscapeExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<HTML>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3>Technology</H3>
    <DL><p>
        <DT><H3>Databases</H3>
        <DL><p>
            <DT><A HREF="https://sqlite.org">SQLite</A>
        </DL><p>
    </DL><p>
    <DT><A HREF="https://golang.org">Go</A>
</DL><p>
</HTML>
`

func TestParseNetscapeBookmarks(t *testing.T) {
	items, err := ParseNetscapeBookmarks(strings.NewReader(netscapeExport))
	if err != nil {
		t.Fatalf("ParseNetscapeBookmarks: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	var sqlite, golang *BookmarkImportData
	for i := range items {
		switch items[i].URL {
		case "https://sqlite.org":
			sqlite = &items[i]
		case "https://golang.org":
			golang = &items[i]
		}
	}
	if sqlite == nil || sqlite.Tags != "Technology,Databases" {
		t.Fatalf("got sqlite entry %+v, want folder tag Technology,Databases", sqlite)
	}
	if golang == nil || golang.Tags != "" {
		t.Fatalf("got go entry %+v, want no folder tag", golang)
	}
}

func TestImportBrowserHTML(t *testing.T) {
	store := newFakeStore()
	report, err := ImportBrowserHTML(context.Background(), store, strings.NewReader(netscapeExport), false, false)
	if err != nil {
		t.Fatalf("ImportBrowserHTML: %v", err)
	}
	if report.Added != 2 {
		t.Fatalf("got added=%d, want 2", report.Added)
	}
	b, err := store.GetByURL(context.Background(), "https://sqlite.org")
	if err != nil {
		t.Fatalf("GetByURL: %v", err)
	}
	if b.Title != "SQLite" {
		t.Fatalf("got title %q", b.Title)
	}

	// re-running without update is a no-op
	report, err = ImportBrowserHTML(context.Background(), store, strings.NewReader(netscapeExport), false, false)
	if err != nil {
		t.Fatalf("second ImportBrowserHTML: %v", err)
	}
	if report.Added != 0 || report.Updated != 0 {
		t.Fatalf("got %+v, want no-op on rerun", report)
	}
}
