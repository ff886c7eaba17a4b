package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Bookmark is the single unified entity: a URI, a code snippet, a shell
// script, a markdown note, an env-var bundle, or a file-imported record.
// Which one it is is determined entirely by its tag set (see SystemTag).
type Bookmark struct {
	ID          int64
	URL         string // content slot: URI, literal payload, or $BASE/path reference
	Title       string
	Description string
	Tags        []Tag
	AccessCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Embedding   []byte // little-endian packed f32, nil if absent
	ContentHash []byte // 16-byte MD5 fingerprint gating regeneration
	Embeddable  bool

	FilePath  *string // all three set together, or none
	FileMtime *int64
	FileHash  *string
}

// Validate checks the invariants that aren't already enforced by
// construction helpers: the file-import triple is all-or-none, an
// embedding requires Embeddable, and timestamps are monotonic.
func (b *Bookmark) Validate() error {
	triple := []bool{b.FilePath != nil, b.FileMtime != nil, b.FileHash != nil}
	anySet, allSet := false, true
	for _, v := range triple {
		if v {
			anySet = true
		} else {
			allSet = false
		}
	}
	if anySet && !allSet {
		return fmt.Errorf("%w: file_path/file_mtime/file_hash must be all set or all absent", ErrInvalidInput)
	}
	if b.Embedding != nil && !b.Embeddable {
		return fmt.Errorf("%w: embedding set on a non-embeddable bookmark", ErrInvalidInput)
	}
	if b.UpdatedAt.Before(b.CreatedAt) {
		return fmt.Errorf("%w: updated_at before created_at", ErrInvalidInput)
	}
	return nil
}

// HasSystemTag reports whether t is present in the bookmark's tag set.
func (b *Bookmark) HasSystemTag(t SystemTag) bool {
	want := t.String()
	for _, tag := range b.Tags {
		if tag.Value() == want {
			return true
		}
	}
	return false
}

// SystemTags returns every known system tag present on the bookmark, in
// SystemTag enumeration order.
func (b *Bookmark) SystemTags() []SystemTag {
	var out []SystemTag
	for _, t := range allSystemTags {
		if b.HasSystemTag(t) {
			out = append(out, t)
		}
	}
	return out
}

// AddSystemTag appends the canonical literal for t, if not already present.
func (b *Bookmark) AddSystemTag(t SystemTag) {
	tag, _ := NewTag(t.String())
	b.AddTags([]Tag{tag})
}

// RemoveSystemTag removes the canonical literal for t, if present.
func (b *Bookmark) RemoveSystemTag(t SystemTag) {
	tag, _ := NewTag(t.String())
	b.RemoveTags([]Tag{tag})
}

// AddTags merges additional tags into the bookmark's set, deduplicating.
func (b *Bookmark) AddTags(tags []Tag) {
	set := tagSet(b.Tags)
	for _, t := range tags {
		if _, ok := set[t.Value()]; ok {
			continue
		}
		set[t.Value()] = struct{}{}
		b.Tags = append(b.Tags, t)
	}
	sortTags(b.Tags)
}

// RemoveTags drops the given tags from the bookmark's set, if present.
func (b *Bookmark) RemoveTags(tags []Tag) {
	drop := tagSet(tags)
	out := b.Tags[:0:0]
	for _, t := range b.Tags {
		if _, ok := drop[t.Value()]; ok {
			continue
		}
		out = append(out, t)
	}
	b.Tags = out
}

// ReplaceTags overwrites the bookmark's tag set wholesale.
func (b *Bookmark) ReplaceTags(tags []Tag) {
	b.Tags = nil
	b.AddTags(tags)
}

func sortTags(tags []Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].Value() < tags[j].Value() })
}

// IsURILike reports whether the payload looks like it should be handed to
// a URI action: it contains a scheme separator, or it resolves to an
// existing filesystem path. pathExists is injected so domain logic stays
// free of os calls in tests.
func (b *Bookmark) IsURILike(pathExists func(string) bool) bool {
	if strings.Contains(b.URL, "://") {
		return true
	}
	if pathExists != nil && pathExists(b.URL) {
		return true
	}
	return false
}

// ContentForEmbedding is the text handed to the embedder: "title --
// description", or the raw payload if both are empty. The content
// fingerprint (embedding.Fingerprint) is built from tags, title and
// description separately and does not hash this string.
func (b *Bookmark) ContentForEmbedding() string {
	if b.Title == "" && b.Description == "" {
		return b.URL
	}
	return b.Title + " -- " + b.Description
}

// RecordAccess increments the access counter and bumps UpdatedAt to now.
func (b *Bookmark) RecordAccess(now time.Time) {
	b.AccessCount++
	b.UpdatedAt = now
}
