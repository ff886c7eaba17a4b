// Package embedding implements the Embedder capability, the two wire
// encodings for vectors, cosine similarity, and the content fingerprint
// that gates regeneration.
package embedding

import (
	"context"
	"crypto/md5"
	"fmt"
	"sort"
	"strings"

	"github.com/sysid/bkmr/internal/domain"
)

// Embedder turns text into a vector. A nil result (with no error) means
// "no embedding available" and is never treated as fatal by callers.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// NullEmbedder always returns (nil, nil); it is wired in when no remote
// API key is configured, so embeddable bookmarks simply never carry a
// vector until an embedder becomes available.
type NullEmbedder struct{}

func (NullEmbedder) Embed(context.Context, string) ([]float32, error) { return nil, nil }

// Fingerprint computes the MD5 content fingerprint used to decide whether
// a bookmark's embedding needs regeneration: MD5 of
// ",<sorted-tags>,<title> -- <description>,<sorted-tags>,".
func Fingerprint(b *domain.Bookmark) [16]byte {
	values := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		values = append(values, t.Value())
	}
	sort.Strings(values)
	sorted := strings.Join(values, ",")
	normalized := fmt.Sprintf(",%s,%s -- %s,%s,", sorted, b.Title, b.Description, sorted)
	return md5.Sum([]byte(normalized))
}
