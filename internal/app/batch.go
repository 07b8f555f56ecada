package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/dshills/termkeys/internal/input/key"
	"github.com/dshills/termkeys/internal/input/termcap"
)

// Batch token forms besides plain key specifications.
const (
	termcapPrefix = "@"
	waitPrefix    = "wait:"
)

// BatchError reports a malformed batch line.
type BatchError struct {
	Line int
	Err  error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// RunBatch translates whitespace-separated tokens read from r and writes
// one "token<TAB>output" line per token to w. A token is a key
// specification ("Ctrl+Up", '<S-Tab>'), a termcap name prefixed with
// "@" ("@ku"), or "wait:N" to advance the clock by N milliseconds. Lines
// starting with '#' are comments. Words follow shell quoting, so
// Vim-style specifications must be quoted.
//
// The clock is virtual: each token advances it past the gesture debounce
// window unless a wait says otherwise.
func (a *App) RunBatch(r io.Reader, w io.Writer) error {
	step := a.Step().Milliseconds()
	now := a.now().UnixMilli()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens, err := splitLine(line)
		if err != nil {
			return &BatchError{Line: lineNo, Err: err}
		}

		for _, tok := range tokens {
			if ms, ok := strings.CutPrefix(tok, waitPrefix); ok {
				n, err := strconv.Atoi(ms)
				if err != nil || n < 0 {
					return &BatchError{Line: lineNo, Err: fmt.Errorf("bad wait %q", tok)}
				}
				now += int64(n)
				continue
			}

			now += step
			result := a.batchToken(tok, now)
			if _, err := fmt.Fprintf(w, "%s\t%s\n", tok, result); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

// batchToken translates a single token and formats the result column.
func (a *App) batchToken(tok string, nowMillis int64) string {
	var ev key.Event
	if name, ok := strings.CutPrefix(tok, termcapPrefix); ok {
		entry, found := termcap.Lookup(name)
		if !found {
			return "error: " + fmt.Sprintf("%v: %q", ErrUnknownCapability, name)
		}
		ev = entry.Event()
	} else {
		parsed, err := key.Parse(tok)
		if err != nil {
			return "error: " + err.Error()
		}
		ev = parsed
	}

	out, ok := a.translateAt(ev, nowMillis)
	if !ok {
		return "-"
	}
	return strconv.Quote(out)
}

// splitLine splits a batch line into words with shell quoting.
func splitLine(line string) ([]string, error) {
	p := shellwords.NewParser()
	words, err := p.Parse(line)
	if err != nil {
		return nil, err
	}
	if p.Position >= 0 {
		return nil, fmt.Errorf("unquoted %q at column %d", line[p.Position], p.Position+1)
	}
	return words, nil
}
