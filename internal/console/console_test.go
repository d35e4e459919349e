package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"finance/internal/core"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestPrompter_Line(t *testing.T) {
	ctx := context.Background()
	p, out := newTestPrompter("first\r\nsecond\n")

	got, err := p.Line(ctx, "> ")
	if err != nil || got != "first" {
		t.Fatalf("Line() = %q, %v", got, err)
	}
	got, err = p.Line(ctx, "> ")
	if err != nil || got != "second" {
		t.Fatalf("Line() = %q, %v", got, err)
	}
	if _, err := p.Line(ctx, "> "); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF at end of input, got %v", err)
	}
	if out.String() != "> > > " {
		t.Errorf("prompts = %q", out.String())
	}
}

func TestPrompter_Numbers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{name: "plain", input: "42\n", want: 42},
		{name: "surrounding space", input: "  7 \n", want: 7},
		{name: "negative", input: "-3\n", want: -3},
		{name: "letters", input: "abc\n", wantErr: ErrInvalidNumber},
		{name: "empty", input: "\n", wantErr: ErrInvalidNumber},
		{name: "end of input", input: "", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			got, err := p.Int64(context.Background(), "n: ")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Int64() = %d, %v, want %d", got, err, tt.want)
			}
		})
	}
}

func TestPrompter_MoneyAndMonth(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	p, _ := newTestPrompter("12,50\n-1\njanuary\nsmarch\n")

	m, err := p.Money(ctx, "amount: ")
	if err != nil || m.Cents != 1250 {
		t.Errorf("Money() = %v, %v", m, err)
	}
	if _, err := p.Money(ctx, "amount: "); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	month, err := p.Month(ctx, "month: ", now)
	if err != nil || month != core.NewMonth(2025, time.January) {
		t.Errorf("Month() = %v, %v", month, err)
	}
	if _, err := p.Month(ctx, "month: ", now); !errors.Is(err, core.ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: fmt.Errorf("list: %w: %w", core.ErrStorageUnavailable, errors.New("disk I/O error")), want: "Error: the database is unavailable. Please try again later."},
		{err: fmt.Errorf("2025-01: %w", core.ErrNoBudget), want: "No budget set for that month."},
		{err: fmt.Errorf("transaction 9: %w", core.ErrNotFound), want: "Not found."},
		{err: core.ErrNoData, want: "No data available to generate a report."},
		{err: core.ErrInvalidAmount, want: "Invalid amount. Enter a non-negative number such as 12.34."},
		{err: core.ErrInvalidMonth, want: "Invalid month. Use YYYY-MM or a month name such as January."},
		{err: core.ErrEmptyUsername, want: "Username cannot be empty."},
		{err: core.ErrInvalidPassword, want: "Password does not meet the criteria."},
		{err: core.ErrAlreadyExists, want: "Username already exists."},
		{err: core.ErrInvalidCredentials, want: "Invalid username or password."},
		{err: ErrInvalidNumber, want: "Invalid input. Please enter a number."},
		{err: errors.New("boom"), want: "Unexpected error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestMenu_LoopRepromptsOnInvalidChoice(t *testing.T) {
	p, out := newTestPrompter("9\nx\n1\n2\n")
	calls := 0
	m := NewMenu(p, nil, "Tool",
		Option{Label: "Do it", Run: func(context.Context) error { calls++; return nil }},
		Option{Label: "Exit"},
	)
	m.Loop = true
	m.Goodbye = "Exiting... Goodbye!"

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("action ran %d times, want 1", calls)
	}
	got := out.String()
	if n := strings.Count(got, "Invalid choice. Please try again."); n != 2 {
		t.Errorf("invalid choice reported %d times, want 2\n%s", n, got)
	}
	if !strings.Contains(got, "1. Do it\n2. Exit\n") {
		t.Errorf("options not rendered:\n%s", got)
	}
	if !strings.HasSuffix(got, "Exiting... Goodbye!\n") {
		t.Errorf("missing goodbye:\n%s", got)
	}
}

func TestMenu_LoopReportsErrorsAndContinues(t *testing.T) {
	p, out := newTestPrompter("1\n1\n")
	calls := 0
	m := NewMenu(p, nil, "Tool",
		Option{Label: "Fail", Run: func(context.Context) error {
			calls++
			return fmt.Errorf("transaction 3: %w", core.ErrNotFound)
		}},
	)
	m.Loop = true

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("action ran %d times, want 2", calls)
	}
	if n := strings.Count(out.String(), "Not found."); n != 2 {
		t.Errorf("error reported %d times, want 2", n)
	}
}

func TestMenu_SingleShot(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCalls int
		wantOut   string
	}{
		{name: "valid choice runs once", input: "1\n1\n", wantCalls: 1},
		{name: "invalid choice exits", input: "5\n1\n", wantCalls: 0, wantOut: "Invalid choice. Exiting."},
		{name: "end of input", input: "", wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.input)
			calls := 0
			m := NewMenu(p, nil, "Report Generator",
				Option{Label: "View", Run: func(context.Context) error { calls++; return nil }},
			)
			m.Invalid = "Invalid choice. Exiting."

			if err := m.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output %q missing %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestMenu_EOFInsideActionEndsQuietly(t *testing.T) {
	p, out := newTestPrompter("1\n")
	m := NewMenu(p, nil, "Tool",
		Option{Label: "Ask", Run: func(ctx context.Context) error {
			_, err := p.Line(ctx, "amount: ")
			return err
		}},
	)
	m.Loop = true

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "Unexpected error") {
		t.Errorf("EOF should not be reported:\n%s", out.String())
	}
}

func TestMenu_CancelledContext(t *testing.T) {
	p, out := newTestPrompter("1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMenu(p, nil, "Tool", Option{Label: "Never", Run: func(context.Context) error {
		t.Error("action should not run")
		return nil
	}})
	m.Loop = true
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestPrompter_LineReturnsOnCancel(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	p := NewPrompter(in, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.Line(ctx, "> ")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Line still blocked after cancellation")
	}
}

func TestMenu_CancelWhileWaitingForInput(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	var out bytes.Buffer
	p := NewPrompter(in, &out)

	ran := false
	m := NewMenu(p, nil, "Tool", Option{Label: "Act", Run: func(context.Context) error {
		ran = true
		return nil
	}})
	m.Loop = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	time.AfterFunc(50*time.Millisecond, cancel)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("menu still blocked reading input after cancellation")
	}
	if ran {
		t.Error("no action should run after cancellation")
	}
	if strings.Contains(out.String(), "unavailable") || strings.Contains(out.String(), "Unexpected error") {
		t.Errorf("cancellation should not be reported as an error:\n%s", out.String())
	}
}

func TestMenu_CancelledActionIsNotReported(t *testing.T) {
	p, out := newTestPrompter("1\n")
	ctx, cancel := context.WithCancel(context.Background())

	m := NewMenu(p, nil, "Tool", Option{Label: "Slow", Run: func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	}})
	m.Loop = true

	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "Unexpected error") {
		t.Errorf("cancellation should end the menu quietly:\n%s", out.String())
	}
}
