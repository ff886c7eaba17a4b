package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sysid/bkmr/internal/domain"
)

// Store is the subset of internal/storage.Store the importer depends on.
type Store interface {
	GetByURL(ctx context.Context, url string) (*domain.Bookmark, error)
	GetAll(ctx context.Context) ([]*domain.Bookmark, error)
	Add(ctx context.Context, b *domain.Bookmark) error
	Update(ctx context.Context, b *domain.Bookmark) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// Options configures a file-import run (spec §4.G).
type Options struct {
	Update        bool
	DeleteMissing bool
	DryRun        bool
	Verbose       bool
	BasePath      string // named base key; canonical url becomes $<BASE>/<relative>
	BasePathRoot  string // filesystem root the relative path is computed against
}

// Report summarizes one import run. RunID correlates log lines for this
// run; it has no persisted meaning (spec §4.G).
type Report struct {
	RunID   string
	Added   int
	Updated int
	Deleted int
}

// DuplicateNameError is returned when a changed file collides with an
// existing record and Options.Update is false.
type DuplicateNameError struct{ Name string }

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%v: %q changed on disk; rerun with --update", domain.ErrDuplicateName, e.Name)
}

func (e *DuplicateNameError) Unwrap() error { return domain.ErrDuplicateName }

// ImportFiles walks every path in paths (files are imported directly,
// directories are walked recursively) and reconciles each annotated file
// against store. It stops at the first DuplicateNameError unless the
// caller has set Options.Update.
func ImportFiles(ctx context.Context, store Store, readFile func(string) ([]byte, error), paths []string, opts Options) (Report, error) {
	runID := uuid.NewString()
	report := Report{RunID: runID}
	seen := map[string]bool{}

	// Reconciliation keys off the frontmatter "name" field (spec §4.G),
	// not the path-derived canonical URL: two different files sharing the
	// same name must collide, even though each resolves to a distinct url.
	// nameIndex is seeded from every previously-imported bookmark and kept
	// current as this run inserts/updates, so an intra-run collision (two
	// files in the same scan sharing a name) is caught too.
	all, err := store.GetAll(ctx)
	if err != nil {
		return report, err
	}
	nameIndex := map[string]*domain.Bookmark{}
	for _, b := range all {
		if b.FilePath != nil {
			nameIndex[b.Title] = b
		}
	}

	var files []string
	for _, p := range paths {
		found, err := walk(p)
		if err != nil {
			return report, err
		}
		files = append(files, found...)
	}

	for _, path := range files {
		raw, err := readFile(path)
		if err != nil {
			return report, fmt.Errorf("read %s: %w", path, err)
		}
		fm, body, ok := splitFrontmatter(string(raw))
		if !ok {
			log.Printf("⚠️ [%s] skip %s: no frontmatter", runID, path)
			continue
		}
		if err := fm.validate(); err != nil {
			log.Printf("⚠️ [%s] skip %s: %v", runID, path, err)
			continue
		}

		canonicalURL, err := canonicalURL(path, opts)
		if err != nil {
			return report, err
		}
		seen[canonicalURL] = true

		hash := sha256.Sum256([]byte(body))
		fileHash := hex.EncodeToString(hash[:])
		mtime, err := fileMtime(path)
		if err != nil {
			return report, fmt.Errorf("stat %s: %w", path, err)
		}

		systemType := fm.Type
		if systemType == "" {
			systemType = domain.SystemTagShell.String()
		}
		tags := domain.ParseTags(fm.Tags + "," + systemType)

		existing, found := nameIndex[fm.Name]
		switch {
		case !found:
			b := &domain.Bookmark{
				URL:         canonicalURL,
				Title:       fm.Name,
				Description: body,
				Tags:        tags,
				Embeddable:  true,
				FilePath:    &path,
				FileMtime:   &mtime,
				FileHash:    &fileHash,
			}
			// Seed nameIndex even under dry-run so a second file later in
			// this same scan that shares fm.Name is still caught as a
			// collision instead of being double-counted as another add.
			nameIndex[fm.Name] = b
			if opts.DryRun {
				report.Added++
				continue
			}
			if err := store.Add(ctx, b); err != nil {
				return report, err
			}
			report.Added++
			if opts.Verbose {
				log.Printf("🔄 [%s] added %s", runID, canonicalURL)
			}

		default:
			if existing.FileHash != nil && *existing.FileHash == fileHash {
				continue // unchanged
			}
			if !opts.Update {
				return report, &DuplicateNameError{Name: fm.Name}
			}
			if opts.DryRun {
				report.Updated++
				continue
			}
			existing.URL = canonicalURL
			existing.Title = fm.Name
			existing.Description = body
			existing.Tags = tags
			existing.FilePath = &path
			existing.FileMtime = &mtime
			existing.FileHash = &fileHash
			existing.Embedding = nil // regenerated lazily
			existing.ContentHash = nil
			if err := store.Update(ctx, existing); err != nil {
				return report, err
			}
			report.Updated++
			if opts.Verbose {
				log.Printf("🔄 [%s] updated %s", runID, canonicalURL)
			}
		}
	}

	if opts.DeleteMissing {
		all, err := store.GetAll(ctx)
		if err != nil {
			return report, err
		}
		for _, b := range all {
			if b.FilePath == nil || seen[b.URL] {
				continue
			}
			if opts.DryRun {
				report.Deleted++
				continue
			}
			if _, err := store.Delete(ctx, b.ID); err != nil {
				return report, err
			}
			report.Deleted++
		}
	}

	log.Printf("✅ [%s] import complete: added=%d updated=%d deleted=%d", runID, report.Added, report.Updated, report.Deleted)
	return report, nil
}

func canonicalURL(path string, opts Options) (string, error) {
	if opts.BasePath == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absRoot, err := filepath.Abs(opts.BasePathRoot)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("$%s/%s", opts.BasePath, filepath.ToSlash(rel)), nil
}

var walkDir = filepath.WalkDir

func walk(root string) ([]string, error) {
	var out []string
	err := walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func fileMtime(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().Unix(), nil
}
