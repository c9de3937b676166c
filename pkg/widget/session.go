package widget

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// quitCommands end an interactive session
var quitCommands = map[string]struct{}{
	"quit": {},
	"exit": {},
	"q":    {},
}

// Run reads one action per line from r and dispatches it. Blank lines and
// lines starting with # are skipped. Unknown actions are reported to
// errOut and do not stop the session. Run returns at EOF, on a quit
// command, when ctx is done, or on the first handler error.
func (w *Widget) Run(ctx context.Context, r io.Reader, errOut io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := quitCommands[strings.ToLower(line)]; ok {
			w.log.Debug("Session ended by user")
			return nil
		}

		if err := w.Dispatch(line); err != nil {
			if errors.Is(err, ErrUnknownAction) {
				fmt.Fprintf(errOut, "unknown action %q (try: signin, referral, tasks, quit)\n", line)
				continue
			}
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading actions: %w", err)
	}
	return nil
}
