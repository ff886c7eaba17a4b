package action

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/sysid/bkmr/internal/domain"
)

// ShellAction renders the payload, writes it to a temporary executable
// file, and runs it with $SHELL (default /bin/sh), inheriting stdio. The
// temp file is removed on every exit path (grounded on
// application/actions/shell_action.rs).
type ShellAction struct {
	Renderer Renderer
	Shell    string
}

func (a *ShellAction) Execute(b *domain.Bookmark) error {
	rendered, err := a.Renderer.Render(b.URL, b)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp("", "bkmr-shell-*.sh")
	if err != nil {
		return fmt.Errorf("%w: could not create temp script: %v", domain.ErrExecutionFailure, err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(rendered); err != nil {
		f.Close()
		return fmt.Errorf("%w: could not write temp script: %v", domain.ErrExecutionFailure, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: could not close temp script: %v", domain.ErrExecutionFailure, err)
	}
	if err := os.Chmod(f.Name(), 0o700); err != nil {
		return fmt.Errorf("%w: could not chmod temp script: %v", domain.ErrExecutionFailure, err)
	}

	shellBin := a.Shell
	if shellBin == "" {
		shellBin = envOr("SHELL", "/bin/sh")
	}
	cmd := exec.Command(shellBin, f.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		code := exitCode(err)
		return fmt.Errorf("%w: shell script exited with code %d", domain.ErrExecutionFailure, code)
	}
	return nil
}

func exitCode(err error) int {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
