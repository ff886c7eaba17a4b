package action

import (
	"fmt"
	"io"
	"os"

	"github.com/sysid/bkmr/internal/domain"
)

// envStdout is a package-level indirection mirroring stderr, so tests can
// capture EnvAction's output without touching the real file descriptor.
var envStdout io.Writer = os.Stdout

// EnvAction renders the payload and prints it to stdout for shell `eval`
// (grounded on application/actions/env_action.rs).
type EnvAction struct {
	Renderer Renderer
}

func (a *EnvAction) Execute(b *domain.Bookmark) error {
	rendered, err := a.Renderer.Render(b.URL, b)
	if err != nil {
		return err
	}
	fmt.Fprintln(envStdout, rendered)
	return nil
}
