// ABOUTME: Line-oriented front end for the onboarding wizard.
// ABOUTME: Prompts for each field of each step, with :back, :skip, :units, and :quit commands.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/onboarding"
)

var errAborted = errors.New("onboarding cancelled")

type stepAction int

const (
	actionNext stepAction = iota
	actionBack
	actionSkip
)

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errAborted
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) warn(msg string) {
	color.New(color.FgYellow).Fprintln(p.out, "⚠ "+msg)
}

// runWizard walks the wizard up to the terminal step.
func runWizard(p *prompter, w *onboarding.Wizard, steps []onboarding.Step) error {
	for w.Step() < onboarding.TotalSteps {
		s := steps[w.Step()-1]
		s.Seed(w.Record())

		action, err := p.fillStep(w, s)
		if err != nil {
			return err
		}
		switch action {
		case actionBack:
			w.PrevStep()
		case actionSkip:
			if err := w.Skip(s); err != nil {
				p.warn(err.Error())
			}
		default:
			if err := w.Advance(s); err != nil {
				p.warn(errorMessage(err))
			}
		}
	}
	return nil
}

func (p *prompter) fillStep(w *onboarding.Wizard, s onboarding.Step) (stepAction, error) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintln(p.out)
	bold.Fprintf(p.out, "Step %d/%d: %s", s.Index(), onboarding.TotalSteps, s.Title())
	faint.Fprintf(p.out, "  (%.0f%%)\n", w.Progress())
	faint.Fprintln(p.out, commandHint(w, s))

	fields := s.Fields()
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		line, err := p.ask(fieldPrompt(f))
		if err != nil {
			return actionNext, err
		}

		switch line {
		case "":
			continue
		case ":quit", ":q":
			return actionNext, errAborted
		case ":back", ":b":
			if !w.CanGoBack() {
				p.warn("this is the first step")
				i--
				continue
			}
			return actionBack, nil
		case ":skip", ":s":
			if _, ok := s.(onboarding.Skipper); !ok {
				p.warn("this step cannot be skipped")
				i--
				continue
			}
			return actionSkip, nil
		case ":units", ":u":
			t, ok := s.(onboarding.UnitToggler)
			if !ok {
				p.warn("this step has no units to switch")
				i--
				continue
			}
			t.ToggleUnits()
			faint.Fprintf(p.out, "Switched to %s\n", t.Units())
			fields = s.Fields()
			i = -1
			continue
		}

		if err := s.Set(f.Name, line); err != nil {
			p.warn(errorMessage(err))
			i--
		}
	}
	return actionNext, nil
}

func commandHint(w *onboarding.Wizard, s onboarding.Step) string {
	cmds := []string{"Enter keeps the shown value"}
	if w.CanGoBack() {
		cmds = append(cmds, ":back")
	}
	if _, ok := s.(onboarding.Skipper); ok {
		cmds = append(cmds, ":skip")
	}
	if _, ok := s.(onboarding.UnitToggler); ok {
		cmds = append(cmds, ":units")
	}
	cmds = append(cmds, ":quit")
	return strings.Join(cmds, " · ")
}

func fieldPrompt(f onboarding.Field) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(f.Label)
	if f.Unit != "" {
		fmt.Fprintf(&b, " (%s)", f.Unit)
	}
	if f.Optional {
		b.WriteString(" [optional]")
	}
	if len(f.Options) > 0 {
		sep := " | "
		if f.Kind == onboarding.KindMulti {
			sep = ", "
		}
		fmt.Fprintf(&b, "\n    options: %s", strings.Join(f.Options, sep))
	}
	if f.Value != "" {
		fmt.Fprintf(&b, " [%s]", f.Value)
	}
	b.WriteString(": ")
	return b.String()
}
