package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/sysid/bkmr/internal/domain"
)

type textLine struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// LoadTexts reads newline-delimited JSON objects {"id", "content"} from r,
// each becoming (or, with force, updating) a bookmark tagged _imported_
// whose url is id and whose description is content (spec §4.G.1).
// Malformed lines are logged with their line number and skipped.
func LoadTexts(ctx context.Context, store Store, r io.Reader, dryRun, force bool) (Report, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	report := Report{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		var parsed textLine
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			log.Printf("⚠️ load-texts line %d: malformed json: %v", lineNo, err)
			continue
		}
		if parsed.ID == "" {
			log.Printf("⚠️ load-texts line %d: missing id", lineNo)
			continue
		}

		tag, _ := domain.NewTag(domain.SystemTagText.String())
		existing, err := store.GetByURL(ctx, parsed.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			if dryRun {
				report.Added++
				continue
			}
			b := &domain.Bookmark{
				URL:         parsed.ID,
				Title:       parsed.ID,
				Description: parsed.Content,
				Tags:        []domain.Tag{tag},
				Embeddable:  true,
			}
			if err := store.Add(ctx, b); err != nil {
				return report, fmt.Errorf("line %d: %w", lineNo, err)
			}
			report.Added++

		case err != nil:
			return report, fmt.Errorf("line %d: %w", lineNo, err)

		case force:
			if dryRun {
				report.Updated++
				continue
			}
			existing.Description = parsed.Content
			existing.Embedding = nil
			existing.ContentHash = nil
			if err := store.Update(ctx, existing); err != nil {
				return report, fmt.Errorf("line %d: %w", lineNo, err)
			}
			report.Updated++

		default:
			// exists, force not set: no-op
		}
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("read ndjson: %w", err)
	}
	return report, nil
}
