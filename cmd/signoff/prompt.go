package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/viant/signoff/policy"
)

// prompt asks the operator to confirm items in ask mode.
type prompt struct {
	mu     sync.Mutex
	reader *bufio.Reader
	writer io.Writer
}

func newPrompt(r io.Reader, w io.Writer) *prompt {
	return &prompt{reader: bufio.NewReader(r), writer: w}
}

// Ask reads y(es), n(o) or a(ll).  "all" switches the policy to auto for the
// rest of the run.  End of input declines.
func (p *prompt) Ask(ctx context.Context, category, item string, aPolicy *policy.Policy) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if ctx.Err() != nil {
			return false
		}
		fmt.Fprintf(p.writer, "authorize %s %q? [y/N/a] ", category, item)
		line, err := p.reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "a", "all":
			aPolicy.Mode = policy.ModeAuto
			return true
		case "", "n", "no":
			return false
		}
		if err != nil {
			return false
		}
		fmt.Fprintln(p.writer, "please answer y, n or a")
	}
}
