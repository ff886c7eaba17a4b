package action

import (
	"fmt"
	"strings"

	"github.com/sysid/bkmr/internal/domain"
)

// UriAction handles the general-purpose "open this" case: the legacy
// shell:: prefix, .md files routed to $EDITOR, existing paths, and
// everything else routed to the OS default opener (grounded on
// application/actions/uri_action.rs).
type UriAction struct {
	Renderer   Renderer
	Opener     Opener
	Shell      ShellRunner
	Editor     string
	PathExists PathExister
}

const legacyShellPrefix = "shell::"

func (a *UriAction) Execute(b *domain.Bookmark) error {
	rendered, err := a.Renderer.Render(b.URL, b)
	if err != nil {
		return err
	}

	if strings.HasPrefix(rendered, legacyShellPrefix) {
		fmt.Fprintln(stderr, "warning: the shell:: URI prefix is deprecated; tag the bookmark _shell_ instead")
		command := strings.TrimPrefix(rendered, legacyShellPrefix)
		if a.Shell == nil {
			return fmt.Errorf("%w: no shell runner configured for legacy shell:: prefix", domain.ErrExecutionFailure)
		}
		if err := a.Shell.RunInherited(command); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrExecutionFailure, err)
		}
		return nil
	}

	exists := a.pathExists()
	if exists(rendered) && strings.HasSuffix(rendered, ".md") {
		editor := a.Editor
		if editor == "" {
			editor = envOr("EDITOR", "vi")
		}
		return runForeground(editor, rendered)
	}

	if err := a.Opener.Open(rendered); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExecutionFailure, err)
	}
	return nil
}

func (a *UriAction) pathExists() PathExister {
	if a.PathExists != nil {
		return a.PathExists
	}
	return defaultPathExists
}
