package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/josephgoksu/taskdeck/internal/logger"
	"github.com/josephgoksu/taskdeck/models"
	"github.com/josephgoksu/taskdeck/types"
)

// prompter reads whole lines of any length in a background goroutine so a
// blocked read does not prevent context cancellation from ending the menu.
type prompter struct {
	out   io.Writer
	in    io.Reader
	lines chan string
	err   error // set before lines is closed
	start bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out}
}

func (p *prompter) run() {
	p.lines = make(chan string)
	go func() {
		defer close(p.lines)
		reader := bufio.NewReader(p.in)
		for {
			s, err := reader.ReadString('\n')
			if err != nil {
				// A final line without a newline still counts.
				if s != "" {
					p.lines <- s
				}
				if !errors.Is(err, io.EOF) {
					p.err = err
				}
				return
			}
			p.lines <- s
		}
	}()
}

// line prints label and returns the next input line, trimmed. It returns
// io.EOF once input is exhausted and ctx.Err() on cancellation.
func (p *prompter) line(ctx context.Context, label string) (string, error) {
	if !p.start {
		p.start = true
		p.run()
	}

	fmt.Fprint(p.out, label)
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case s, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			if p.err != nil {
				return "", fmt.Errorf("read input: %w", p.err)
			}
			return "", io.EOF
		}
		s = strings.TrimSpace(s)
		logger.SetLastInput(s)
		return s, nil
	}
}

// id keeps asking until the answer is an integer.
func (p *prompter) id(ctx context.Context, label string, onInvalid func()) (int, error) {
	for {
		s, err := p.line(ctx, label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(s)
		if convErr == nil {
			return n, nil
		}
		onInvalid()
	}
}

// priority keeps asking until the answer is 1, 2 or 3.
func (p *prompter) priority(ctx context.Context, label string, onInvalid func(reason string)) (models.Priority, error) {
	for {
		s, err := p.line(ctx, label)
		if err != nil {
			return 0, err
		}
		prio, parseErr := models.ParsePriority(s)
		if parseErr == nil {
			return prio, nil
		}
		var verr *types.ValidationError
		if errors.As(parseErr, &verr) {
			onInvalid(verr.Reason)
		} else {
			onInvalid(parseErr.Error())
		}
	}
}
