// ABOUTME: Onboarding wizard controller: step index, shared answer record, and route guard.
// ABOUTME: Steps read the record and write back through UpdateData.
package onboarding

import (
	"fmt"

	"github.com/harperreed/fitforge/internal/appstate"
	"github.com/harperreed/fitforge/internal/models"
)

// TotalSteps is the number of wizard steps. Step 14 is terminal.
const TotalSteps = 14

// Routes the wizard navigates to.
const (
	RouteHome      = "/"
	RouteDashboard = "/dashboard"
)

// Navigator performs route changes on behalf of the wizard.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// Updater is the write half of the contract steps receive.
type Updater interface {
	UpdateData(field string, value any) error
}

// Wizard owns the step index and the answer record.
type Wizard struct {
	step   int
	record models.Record
	nav    Navigator
}

// NewWizard returns a wizard on step 1 with an empty record.
func NewWizard(nav Navigator) *Wizard {
	return &Wizard{step: 1, nav: nav}
}

// Step returns the current step index, 1..TotalSteps.
func (w *Wizard) Step() int {
	return w.step
}

// Record returns a copy of the answers so far.
func (w *Wizard) Record() models.Record {
	return w.record.Clone()
}

// Progress is the completed share of the wizard as a percentage.
func (w *Wizard) Progress() float64 {
	return float64(w.step) / float64(TotalSteps) * 100
}

// NextStep advances one step. On the terminal step it navigates to the
// dashboard instead.
func (w *Wizard) NextStep() {
	if w.step >= TotalSteps {
		w.nav.Navigate(RouteDashboard)
		return
	}
	w.step++
}

// PrevStep goes back one step, stopping at 1. The record is untouched.
func (w *Wizard) PrevStep() {
	if w.step > 1 {
		w.step--
	}
}

// CanGoBack reports whether PrevStep is offered on the current step.
func (w *Wizard) CanGoBack() bool {
	return w.step > 1
}

// Advance validates the step, commits it, and moves on.
func (w *Wizard) Advance(s Step) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.Commit(w); err != nil {
		return err
	}
	w.NextStep()
	return nil
}

// Skip runs a step's skip action when it has one.
func (w *Wizard) Skip(s Step) error {
	sk, ok := s.(Skipper)
	if !ok {
		return fmt.Errorf("step %d cannot be skipped", s.Index())
	}
	if err := sk.Skip(w); err != nil {
		return err
	}
	w.NextStep()
	return nil
}

// Mount evaluates the route guard and keeps re-evaluating it whenever the
// signed-in user changes. It reports whether the wizard may show, and
// returns the func that stops watching.
func (w *Wizard) Mount(state *appstate.Store) (bool, func()) {
	ok := w.guard(state.User())
	stop := state.SubscribeUser(func(u *models.UserProfile) {
		w.guard(u)
	})
	return ok, stop
}

func (w *Wizard) guard(u *models.UserProfile) bool {
	switch {
	case u == nil:
		w.nav.Navigate(RouteHome)
		return false
	case u.OnboardingCompleted:
		w.nav.Navigate(RouteDashboard)
		return false
	default:
		return true
	}
}

// Fill runs a prepared record through every step before the terminal one,
// validating and committing each as if it had been typed in.
func (w *Wizard) Fill(steps []Step, answers models.Record) error {
	for w.step < TotalSteps {
		s := steps[w.step-1]
		s.Seed(answers)
		if err := w.Advance(s); err != nil {
			return fmt.Errorf("step %d (%s): %w", s.Index(), s.Title(), err)
		}
	}
	return nil
}
