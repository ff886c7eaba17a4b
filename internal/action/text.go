package action

import (
	"fmt"

	"github.com/sysid/bkmr/internal/domain"
)

// TextAction renders the payload and copies it to the clipboard, without
// the stderr echo SnippetAction prints (grounded on
// application/actions/text_action.rs).
type TextAction struct {
	Renderer  Renderer
	Clipboard ClipboardSink
}

func (a *TextAction) Execute(b *domain.Bookmark) error {
	rendered, err := a.Renderer.Render(b.URL, b)
	if err != nil {
		return err
	}
	if err := a.Clipboard.Copy(rendered); err != nil {
		return fmt.Errorf("%w: clipboard copy failed: %v", domain.ErrExecutionFailure, err)
	}
	return nil
}
