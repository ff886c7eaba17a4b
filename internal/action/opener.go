package action

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ShellRunner executes a raw shell command line via /bin/sh -c, used by
// UriAction's legacy "shell::" prefix handling. Distinct from
// interpolation.ShellExecutor, which additionally applies the safe-shell
// guard; the legacy prefix intentionally bypasses that guard, matching
// original_source's behavior, and is only reached for payloads the user
// already tagged as trusted shell commands.
type ShellRunner interface {
	RunInherited(command string) error
}

// InheritedShellRunner runs a command with the process's stdio attached.
type InheritedShellRunner struct{}

func (InheritedShellRunner) RunInherited(command string) error {
	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// OSOpener hands a target to the platform's default-application launcher.
type OSOpener struct{}

func (OSOpener) Open(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	return cmd.Run()
}

func defaultPathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func runForeground(binary string, args ...string) error {
	cmd := exec.Command(binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", binary, err)
	}
	return nil
}
