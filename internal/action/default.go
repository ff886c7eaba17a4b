package action

import (
	"fmt"

	"github.com/sysid/bkmr/internal/domain"
)

// DefaultAction renders the payload and hands it to the OS default opener
// as-is (grounded on application/actions/default_action.rs).
type DefaultAction struct {
	Renderer Renderer
	Opener   Opener
}

func (a *DefaultAction) Execute(b *domain.Bookmark) error {
	rendered, err := a.Renderer.Render(b.URL, b)
	if err != nil {
		return err
	}
	if err := a.Opener.Open(rendered); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExecutionFailure, err)
	}
	return nil
}
