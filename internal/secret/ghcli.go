package secret

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

// ErrGHAuthUnavailable is returned when the "gh" CLI is missing, not
// logged in, or the caller declined the interactive fallback prompt.
var ErrGHAuthUnavailable = errors.New("secret: gh auth token unavailable")

// GHCLIProvider resolves a key-path by shelling out to `gh auth token`,
// ignoring the key-path itself (the GitHub CLI's own login session is
// the actual credential source). When stdin/stdout are both terminals
// and gh is on PATH but hasn't produced a token, it asks the user once
// before giving up, mirroring the teacher's token-acquisition cascade
// (pkg/github/token.go GetToken).
type GHCLIProvider struct {
	// Prompt, if false, skips the interactive "use gh auth token?"
	// confirmation and fails immediately instead. Non-interactive
	// engine runs (CI) should set this false.
	Prompt bool
}

func (p GHCLIProvider) Resolve(ctx context.Context, _ string) (string, error) {
	if !isGHAvailable() {
		return "", errors.Wrap(ErrGHAuthUnavailable, "gh CLI not found on PATH")
	}

	if token, err := ghAuthToken(ctx); err == nil {
		return token, nil
	}

	if !p.Prompt || !isInteractive() {
		return "", ErrGHAuthUnavailable
	}

	if !promptYesNo("No GitHub token found. Run 'gh auth token'?") {
		return "", ErrGHAuthUnavailable
	}

	return ghAuthToken(ctx)
}

func ghAuthToken(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "gh", "auth", "token")

	output, err := cmd.Output()
	if err != nil {
		return "", errors.Wrap(err, "running gh auth token")
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", errors.New("gh auth token returned an empty token")
	}

	return token, nil
}

func isGHAvailable() bool {
	_, err := exec.LookPath("gh")

	return err == nil
}

func isInteractive() bool {
	//nolint:gosec // G115: Fd() returns uintptr; safe narrowing on all supported platforms
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: same as above
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("%s [y/N] ", question)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))

	return response == "y" || response == "yes"
}
