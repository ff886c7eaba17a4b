package interpolation

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/sysid/bkmr/internal/domain"
)

// blockedChars and blockedWords form the safe-shell guard: a speed bump,
// not a sandbox (see SPEC_FULL.md §9 re-architecture notes).
var blockedChars = []rune{';', '|', '&', '>', '<', '`', '$', '(', ')', '{', '}', '[', ']'}

var blockedWords = []string{"sudo", "rm", "mv", "cp", "dd", "mkfs", "fork", "kill"}

// SafeShellExecutor runs a command through /bin/sh -c after checking it
// against the character and word blocklists, capturing stdout.
type SafeShellExecutor struct{}

func (SafeShellExecutor) Run(command string) (string, error) {
	if err := guard(command); err != nil {
		return "", err
	}
	cmd := exec.Command("/bin/sh", "-c", command)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrExecutionFailure, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

func guard(command string) error {
	for _, c := range blockedChars {
		if strings.ContainsRune(command, c) {
			return fmt.Errorf("%w: command contains blocked character %q", domain.ErrTemplateFailure, c)
		}
	}
	lower := strings.ToLower(command)
	for _, word := range blockedWords {
		for _, field := range strings.Fields(lower) {
			if field == word {
				return fmt.Errorf("%w: command contains blocked word %q", domain.ErrTemplateFailure, word)
			}
		}
	}
	return nil
}
