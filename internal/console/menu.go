package console

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	applog "finance/internal/log"
)

// Action runs one menu entry. Returning io.EOF ends the menu quietly.
type Action func(ctx context.Context) error

type Option struct {
	Label string
	// Run is nil for the Exit entry.
	Run Action
}

// Menu is a numbered list of options read from a Prompter.
type Menu struct {
	Title   string
	Options []Option
	// Loop keeps the menu open after each action. A single-shot menu runs
	// one action, or reports an invalid choice, and returns.
	Loop bool
	// Goodbye is printed when the Exit entry is chosen.
	Goodbye string
	// Invalid is printed for an unknown choice.
	Invalid string
	// Prompt defaults to "Choose an option: ".
	Prompt string

	p   *Prompter
	log *applog.Logger
}

func NewMenu(p *Prompter, logger *applog.Logger, title string, options ...Option) *Menu {
	return &Menu{
		Title:   title,
		Options: options,
		Invalid: "Invalid choice. Please try again.",
		Prompt:  "Choose an option: ",
		p:       p,
		log:     applog.For(logger, applog.ComponentConsole),
	}
}

// Run shows the menu until the Exit entry is chosen, input ends or ctx is
// cancelled, even while waiting at a prompt. Action errors are reported and
// never end a looping menu; errors caused by cancellation are not reported.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		m.render()
		line, err := m.p.Line(ctx, m.Prompt)
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			m.p.Println()
			return nil
		}
		if err != nil {
			return err
		}

		opt, ok := m.choose(line)
		if !ok {
			m.p.Println(m.Invalid)
			if m.Loop {
				continue
			}
			return nil
		}
		if opt.Run == nil {
			if m.Goodbye != "" {
				m.p.Println(m.Goodbye)
			}
			return nil
		}

		if ctx.Err() != nil {
			return nil
		}
		if err := m.perform(ctx, opt); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				m.p.Println()
				return nil
			}
			m.Report(ctx, err)
		}
		if !m.Loop {
			return nil
		}
	}
}

// perform runs opt under its own action ID so its log lines can be grouped.
func (m *Menu) perform(ctx context.Context, opt Option) error {
	ctx, id := applog.WithActionID(ctx)
	start := time.Now()
	m.log.DebugContext(ctx, "Menu action started", applog.FieldActionID, id, applog.FieldAction, opt.Label)

	err := opt.Run(ctx)

	m.log.DebugContext(ctx, "Menu action completed",
		applog.FieldActionID, id,
		applog.FieldAction, opt.Label,
		applog.FieldDurationMs, time.Since(start).Milliseconds(),
		applog.FieldSuccess, err == nil)
	return err
}

// Report prints the user-facing message for err and logs it.
func (m *Menu) Report(ctx context.Context, err error) {
	m.p.Println(Describe(err))
	kind := errorType(err)
	switch kind {
	case applog.ErrorTypeStorage, applog.ErrorTypeInternal:
		m.log.ErrorContext(ctx, "Menu action failed", applog.FieldError, err, applog.FieldErrorType, kind)
	default:
		m.log.WarnContext(ctx, "Menu action rejected", applog.FieldError, err, applog.FieldErrorType, kind)
	}
}

func (m *Menu) render() {
	if m.Title != "" {
		m.p.Println()
		m.p.Println(m.Title)
	}
	for i, opt := range m.Options {
		m.p.Printf("%d. %s\n", i+1, opt.Label)
	}
}

func (m *Menu) choose(line string) (Option, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(m.Options) {
		return Option{}, false
	}
	return m.Options[n-1], true
}
