// Package importer implements the file-import/sync engine: frontmatter
// parsing, hash-based reconciliation against the store, NDJSON text import,
// and legacy browser-bookmark import.
package importer

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the metadata block parsed off the top of an imported file.
type Frontmatter struct {
	Name string
	Tags string
	Type string
}

type fencedFrontmatter struct {
	Name string `yaml:"name"`
	Tags string `yaml:"tags"`
	Type string `yaml:"type"`
}

// splitFrontmatter separates frontmatter from body, accepting either a
// fenced YAML block (`---\n...\n---\n`) or contiguous leading hash-prefixed
// lines (`# key: value`). It returns ok=false when neither syntax is
// present, in which case the caller should skip the file.
func splitFrontmatter(content string) (fm Frontmatter, body string, ok bool) {
	if rest, found := strings.CutPrefix(content, "---\n"); found {
		end := strings.Index(rest, "\n---\n")
		if end == -1 {
			return Frontmatter{}, "", false
		}
		yamlBlock := rest[:end]
		body = rest[end+len("\n---\n"):]
		var parsed fencedFrontmatter
		if err := yaml.Unmarshal([]byte(yamlBlock), &parsed); err != nil {
			return Frontmatter{}, "", false
		}
		return Frontmatter{Name: parsed.Name, Tags: parsed.Tags, Type: parsed.Type}, body, parsed.Name != ""
	}

	lines := strings.Split(content, "\n")
	var headerEnd int
	fields := map[string]string{}
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		key, val, isHeader := parseHashLine(trimmed)
		if !isHeader {
			headerEnd = i
			break
		}
		fields[key] = val
		headerEnd = i + 1
	}
	if fields["name"] == "" {
		return Frontmatter{}, "", false
	}
	return Frontmatter{Name: fields["name"], Tags: fields["tags"], Type: fields["type"]},
		strings.Join(lines[headerEnd:], "\n"), true
}

// parseHashLine recognizes `# key: value` style header lines, the
// line-comment convention shared by shell, Python, and similar scripts.
func parseHashLine(line string) (key, val string, ok bool) {
	trimmed := strings.TrimPrefix(line, "#")
	if trimmed == line {
		return "", "", false
	}
	trimmed = strings.TrimSpace(trimmed)
	parts := strings.SplitN(trimmed, ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	k := strings.TrimSpace(parts[0])
	if k == "" {
		return "", "", false
	}
	return k, strings.TrimSpace(parts[1]), true
}

func (f Frontmatter) validate() error {
	if f.Name == "" {
		return fmt.Errorf("missing required frontmatter key %q", "name")
	}
	return nil
}
