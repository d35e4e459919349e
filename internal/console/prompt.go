// Package console is the text-menu front end shared by the programs under cmd/.
//
// It only reads input, prints results and maps errors to messages. All
// accounting happens in the services it is handed.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"finance/internal/core"
)

// ErrInvalidNumber is returned when a numeric prompt receives something else.
var ErrInvalidNumber = errors.New("invalid number")

type inputLine struct {
	text string
	err  error
}

// Prompter reads answers line by line from in and writes prompts to out.
// Every method returns io.EOF once input is exhausted, and ctx.Err() when ctx
// is cancelled while waiting for an answer.
type Prompter struct {
	in  io.Reader
	out io.Writer

	start sync.Once
	lines chan inputLine
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, lines: make(chan inputLine)}
}

// read scans in on its own goroutine so a blocked terminal read never keeps
// Line from noticing cancellation.
func (p *Prompter) read() {
	sc := bufio.NewScanner(p.in)
	for sc.Scan() {
		p.lines <- inputLine{text: sc.Text()}
	}
	err := io.EOF
	if sc.Err() != nil {
		err = fmt.Errorf("read input: %w", sc.Err())
	}
	for {
		p.lines <- inputLine{err: err}
	}
}

func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints prompt and returns the next input line without its line ending.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.start.Do(func() { go p.read() })
	fmt.Fprint(p.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-p.lines:
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimRight(l.text, "\r"), nil
	}
}

// Int64 reads a base-10 int64.
func (p *Prompter) Int64(ctx context.Context, prompt string) (int64, error) {
	s, err := p.Line(ctx, prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", strings.TrimSpace(s), ErrInvalidNumber)
	}
	return n, nil
}

// Money reads an amount such as 12.34 or 12,34.
func (p *Prompter) Money(ctx context.Context, prompt string) (core.Money, error) {
	s, err := p.Line(ctx, prompt)
	if err != nil {
		return core.Money{}, err
	}
	m, err := core.ParseMoney(s)
	if err != nil {
		return core.Money{}, fmt.Errorf("%q: %w", strings.TrimSpace(s), err)
	}
	return m, nil
}

// Month reads a calendar month. A bare month name resolves against now.
func (p *Prompter) Month(ctx context.Context, prompt string, now time.Time) (core.Month, error) {
	s, err := p.Line(ctx, prompt)
	if err != nil {
		return 0, err
	}
	return core.ParseMonth(s, now)
}
