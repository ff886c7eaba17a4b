package action

import (
	"fmt"

	"github.com/sysid/bkmr/internal/domain"
)

// SnippetAction renders the payload and copies it to the clipboard,
// echoing a confirmation to stderr (grounded on
// application/actions/snippet_action.rs).
type SnippetAction struct {
	Renderer  Renderer
	Clipboard ClipboardSink
}

func (a *SnippetAction) Execute(b *domain.Bookmark) error {
	rendered, err := a.Renderer.Render(b.URL, b)
	if err != nil {
		return err
	}
	if err := a.Clipboard.Copy(rendered); err != nil {
		return fmt.Errorf("%w: clipboard copy failed: %v", domain.ErrExecutionFailure, err)
	}
	fmt.Fprintf(stderr, "copied snippet to clipboard: %s\n", rendered)
	return nil
}
