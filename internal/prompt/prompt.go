// Package prompt runs the questionnaire interactively over a reader and writer.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/healthcheck/internal/audit"
)

// ErrQuit is returned by ParseSelection when the user asks to stop.
var ErrQuit = errors.New("quit")

// Options configures an interactive run.
type Options struct {
	// Start pre-fills answers; those questions are still asked, with the
	// current choice shown.
	Start audit.AnswerSet
	// SkipAnswered does not ask questions already present in Start.
	SkipAnswered bool
	// MaxRetries caps re-prompts for one question. 0 means 3.
	MaxRetries int
}

// FormatQuestion renders one question with 1-based option numbers.
func FormatQuestion(q audit.Question, n, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d/%d] %s\n", n, total, q.Text)
	for i, opt := range q.Options {
		label := opt.Text
		if opt.NA {
			label += " (not applicable)"
		}
		fmt.Fprintf(&b, "  %d) %s\n", i+1, label)
	}
	return b.String()
}

// ParseSelection interprets a line typed in answer to q. An empty line or
// "s" skips the question, "q" quits.
func ParseSelection(input string, q audit.Question) (index int, skip bool, err error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "", "s", "skip":
		return 0, true, nil
	case "q", "quit":
		return 0, false, ErrQuit
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("%q is not a number", input)
	}
	if n < 1 || n > len(q.Options) {
		return 0, false, fmt.Errorf("choose 1-%d", len(q.Options))
	}
	return n - 1, false, nil
}

// Run asks every question of b in order and returns the collected answers.
// EOF, "q", or a cancelled ctx end the run early; what was answered so far
// is returned with a nil error for EOF and quit, and ctx.Err() otherwise.
// Cancelling ctx unblocks a pending read.
func Run(ctx context.Context, in io.Reader, out io.Writer, b *audit.Bank, opts Options) (audit.AnswerSet, error) {
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	set := audit.AnswerSet{}
	for id, idx := range opts.Start {
		set[id] = idx
	}

	stop := make(chan struct{})
	defer close(stop)
	lines, readErr := readLines(in, stop)

	// next reports false at EOF.
	next := func() (string, bool, error) {
		select {
		case <-ctx.Done():
			return "", false, ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return "", false, <-readErr
			}
			return line, true, nil
		}
	}

	total := len(b.Questions)

	for i, q := range b.Questions {
		if err := ctx.Err(); err != nil {
			return set, err
		}
		current, answered := set[q.ID]
		if answered && opts.SkipAnswered {
			continue
		}

		fmt.Fprint(out, FormatQuestion(q, i+1, total))
		if answered {
			if opt, ok := q.Option(current); ok {
				fmt.Fprintf(out, "  (current: %d) %s\n", current+1, opt.Text)
			}
		}

		for attempt := 0; ; attempt++ {
			fmt.Fprint(out, "> ")
			line, ok, err := next()
			if err != nil || !ok {
				fmt.Fprintln(out)
				return set, err
			}
			idx, skip, err := ParseSelection(line, q)
			if errors.Is(err, ErrQuit) {
				return set, nil
			}
			if err != nil {
				if attempt+1 >= maxRetries {
					fmt.Fprintf(out, "  %v, skipping\n", err)
					break
				}
				fmt.Fprintf(out, "  %v\n", err)
				continue
			}
			if !skip {
				set[q.ID] = idx
			}
			break
		}
		fmt.Fprintln(out)
	}
	return set, nil
}

// readLines scans in on its own goroutine so a blocked read never holds up
// the caller. lines is closed at EOF, after the scan error (nil at a clean
// EOF) is sent on errc. Closing stop releases the goroutine once its current
// read returns.
func readLines(in io.Reader, stop <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		errc <- sc.Err()
		close(lines)
	}()
	return lines, errc
}
