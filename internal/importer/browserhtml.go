package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/sysid/bkmr/internal/domain"
)

// BookmarkImportData is one entry recovered from a Netscape-format bookmark
// export (spec §4.G.2).
type BookmarkImportData struct {
	URL   string
	Title string
	Tags  string // folder path flattened into a comma-joined tag, e.g. "Technology,Databases"
}

// ParseNetscapeBookmarks walks a Netscape bookmark-file-1 document (the
// format both Chrome and Firefox export) and returns every anchor found,
// annotated with its folder path.
func ParseNetscapeBookmarks(r io.Reader) ([]BookmarkImportData, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse bookmark html: %w", err)
	}
	var out []BookmarkImportData
	walkBookmarkNode(doc, nil, &out)
	return out, nil
}

func walkBookmarkNode(n *html.Node, folderPath []string, out *[]BookmarkImportData) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "dl":
			walkDefinitionList(n, folderPath, out)
			return
		case "a":
			if item, ok := extractAnchor(n, folderPath); ok {
				*out = append(*out, item)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkBookmarkNode(c, folderPath, out)
	}
}

func walkDefinitionList(dl *html.Node, folderPath []string, out *[]BookmarkImportData) {
	for child := dl.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "dt":
			walkDefinitionTerm(child, folderPath, out)
		case "dl":
			walkDefinitionList(child, folderPath, out)
		}
	}
}

func walkDefinitionTerm(dt *html.Node, folderPath []string, out *[]BookmarkImportData) {
	for child := dt.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "h3":
			folderName := textContent(child)
			newPath := append(append([]string{}, folderPath...), folderName)
			for sibling := child.NextSibling; sibling != nil; sibling = sibling.NextSibling {
				if sibling.Type == html.ElementNode && sibling.Data == "dl" {
					walkDefinitionList(sibling, newPath, out)
					break
				}
			}
			for sibling := dt.NextSibling; sibling != nil; sibling = sibling.NextSibling {
				if sibling.Type == html.ElementNode && sibling.Data == "dl" {
					walkDefinitionList(sibling, newPath, out)
					break
				}
			}
		case "a":
			if item, ok := extractAnchor(child, folderPath); ok {
				*out = append(*out, item)
			}
		}
	}
}

func extractAnchor(a *html.Node, folderPath []string) (BookmarkImportData, bool) {
	var url string
	for _, attr := range a.Attr {
		if strings.EqualFold(attr.Key, "href") {
			url = attr.Val
		}
	}
	if url == "" {
		return BookmarkImportData{}, false
	}
	return BookmarkImportData{
		URL:   url,
		Title: textContent(a),
		Tags:  strings.Join(folderPath, ","),
	}, true
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return strings.TrimSpace(sb.String())
}

// ImportBrowserHTML reconciles every anchor parsed from r against store,
// using the same update/dry_run semantics as file import. There is no
// delete_missing equivalent: a browser export carries no stable per-bookmark
// identity beyond the URL itself.
func ImportBrowserHTML(ctx context.Context, store Store, r io.Reader, update, dryRun bool) (Report, error) {
	items, err := ParseNetscapeBookmarks(r)
	if err != nil {
		return Report{}, err
	}
	report := Report{}
	for _, item := range items {
		tags := domain.ParseTags(item.Tags)
		existing, err := store.GetByURL(ctx, item.URL)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			if dryRun {
				report.Added++
				continue
			}
			b := &domain.Bookmark{URL: item.URL, Title: item.Title, Tags: tags, Embeddable: true}
			if err := store.Add(ctx, b); err != nil {
				return report, err
			}
			report.Added++

		case err != nil:
			return report, err

		case update:
			if dryRun {
				report.Updated++
				continue
			}
			existing.Title = item.Title
			existing.Tags = tags
			if err := store.Update(ctx, existing); err != nil {
				return report, err
			}
			report.Updated++

		default:
			// exists, update not requested: no-op
		}
	}
	return report, nil
}
