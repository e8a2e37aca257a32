package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// maxCaptureBytes bounds how much combined output is kept from an external
// command, so a misbehaving tool cannot grow memory without limit.
const maxCaptureBytes = 64 * 1024

// runCommand executes name with args, capturing combined stdout and stderr.
// The ok flag reports whether the command launched and finished within the
// timeout; a non-zero exit with output still counts as ok, since ping and
// traceroute exit non-zero on unreachable targets while printing a perfectly
// parseable summary.
func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	text := string(out)
	if len(text) > maxCaptureBytes {
		text = text[:maxCaptureBytes]
	}

	if ctx.Err() != nil {
		return false, fmt.Sprintf("error running %s %s: %v", name, strings.Join(args, " "), ctx.Err())
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return false, fmt.Sprintf("error running %s %s: %v", name, strings.Join(args, " "), err)
	}
	return true, text
}
