// Package shell holds the view state of the explorer: what was typed, which
// skills were submitted, and the advice that came back.
package shell

import (
	"context"
	"errors"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/diagram"
	"github.com/abhisek/careerpath/internal/gateway"
	"github.com/abhisek/careerpath/internal/skillmatch"
)

// Phase is the explorer's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// User-facing error texts shown in the recommendations panel.
const (
	ErrorTextConfiguration = "API configuration error"
	ErrorTextRequest       = "Failed to process request"
)

// Ticket describes one accepted submission. Ctx is cancelled when the
// submission is superseded by a reset or a newer submit.
type Ticket struct {
	Generation uint64
	Skills     []string
	Ctx        context.Context
}

// Machine is the explorer state machine. It is not safe for concurrent use;
// the UI event loop owns it.
type Machine struct {
	input      string
	skills     []string
	advice     *advice.Advice
	phase      Phase
	generation uint64
	cancel     context.CancelFunc
	parent     context.Context
}

// New returns an idle Machine. Request contexts derive from parent.
func New(parent context.Context) *Machine {
	if parent == nil {
		parent = context.Background()
	}
	return &Machine{parent: parent}
}

func (m *Machine) Phase() Phase           { return m.phase }
func (m *Machine) Input() string          { return m.input }
func (m *Machine) Skills() []string       { return m.skills }
func (m *Machine) Advice() *advice.Advice { return m.advice }
func (m *Machine) Generation() uint64     { return m.generation }
func (m *Machine) SetInput(s string)      { m.input = s }
func (m *Machine) Loading() bool          { return m.phase == PhaseLoading }

// CanSubmit reports whether the submit control is active.
func (m *Machine) CanSubmit() bool { return m.phase != PhaseLoading }

// ShowVisualization reports whether a diagram should be drawn.
func (m *Machine) ShowVisualization() bool { return m.phase != PhaseIdle && len(m.skills) > 0 }

// ShowReset reports whether the reset control is offered. It appears once a
// visualization is shown.
func (m *Machine) ShowReset() bool { return m.ShowVisualization() }

// Submit parses the current input and starts a request. It returns false
// while a request is in flight or when the input holds no skills.
func (m *Machine) Submit() (Ticket, bool) {
	if m.phase == PhaseLoading {
		return Ticket{}, false
	}
	skills := skillmatch.ParseSkills(m.input)
	if len(skills) == 0 {
		return Ticket{}, false
	}

	m.bump()
	ctx, cancel := context.WithCancel(m.parent)
	m.cancel = cancel
	m.skills = skills
	m.advice = nil
	m.phase = PhaseLoading
	return Ticket{Generation: m.generation, Skills: skills, Ctx: ctx}, true
}

// Resolve applies the result of the request with the given generation.
// Results from superseded requests are dropped and Resolve returns false.
func (m *Machine) Resolve(generation uint64, adv *advice.Advice, err error) bool {
	if generation != m.generation || m.phase != PhaseLoading {
		return false
	}
	if err != nil {
		adv = &advice.Advice{Error: ErrorText(err)}
	}
	m.advice = adv
	m.phase = PhaseReady
	m.release()
	return true
}

// Reset clears input, skills and advice, and abandons any request in flight.
func (m *Machine) Reset() {
	m.bump()
	m.input = ""
	m.skills = nil
	m.advice = nil
	m.phase = PhaseIdle
}

// Diagram lays out the current state.
func (m *Machine) Diagram(b *diagram.Builder) diagram.Diagram {
	if !m.ShowVisualization() {
		return b.Build(nil, nil, false)
	}
	return b.Build(m.skills, m.advice, m.Loading())
}

// bump advances the generation and cancels the request in flight, if any.
func (m *Machine) bump() {
	m.release()
	m.generation++
}

func (m *Machine) release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// ErrorText maps an advice error to the message shown to the user.
func ErrorText(err error) string {
	if errors.Is(err, gateway.ErrConfiguration) {
		return ErrorTextConfiguration
	}
	return ErrorTextRequest
}
