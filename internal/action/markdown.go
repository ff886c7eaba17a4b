package action

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sysid/bkmr/internal/domain"
)

// htmlDocument is the minimal wrapping document MarkdownAction writes
// around the rendered HTML body, with embedded CSS for readable
// typography (grounded on application/actions/markdown_action.rs).
const htmlDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 42rem; margin: 2rem auto; padding: 0 1rem; font-family: -apple-system, sans-serif; line-height: 1.6; color: #222; }
pre, code { background: #f4f4f4; padding: 0.2em 0.4em; border-radius: 4px; }
pre { padding: 1em; overflow-x: auto; }
</style>
</head>
<body>
%s
</body>
</html>
`

// markdownToHTML is a minimal Markdown-to-HTML translator covering the
// constructs a rendered bookmark payload realistically needs: headings,
// paragraphs, fenced code blocks, and inline code/bold/italic. It is
// intentionally not a full CommonMark implementation.
func markdownToHTML(src string) string {
	return minimalMarkdown(src)
}

// MarkdownAction renders the payload, converts it to a small wrapping
// HTML document, writes it to a temp file in a directory the process
// deliberately leaks (so the external viewer can still read it after this
// function returns), and hands the path to the OS opener.
type MarkdownAction struct {
	Renderer Renderer
	Opener   Opener
}

func (a *MarkdownAction) Execute(b *domain.Bookmark) error {
	rendered, err := a.Renderer.Render(b.URL, b)
	if err != nil {
		return err
	}
	body := markdownToHTML(rendered)
	title := b.Title
	if title == "" {
		title = "bkmr note"
	}
	doc := fmt.Sprintf(htmlDocument, title, body)

	dir, err := os.MkdirTemp("", "bkmr-md-*")
	if err != nil {
		return fmt.Errorf("%w: could not create temp dir: %v", domain.ErrExecutionFailure, err)
	}
	// Deliberately not removed: the external viewer launched below needs
	// the file to exist for as long as the process keeps running.
	path := filepath.Join(dir, "note.html")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		return fmt.Errorf("%w: could not write rendered note: %v", domain.ErrExecutionFailure, err)
	}
	if err := a.Opener.Open(path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExecutionFailure, err)
	}
	return nil
}
