// Package explorer is the main TUI screen: skill input, recommendations and
// the skill-to-career visualization.
package explorer

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/diagram"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/shell"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Advisor produces career advice for a skill list. Both *gateway.Gateway
// and *client.Client satisfy it.
type Advisor interface {
	RequestCareerAdvice(ctx context.Context, skills []string) (*advice.Advice, error)
}

// Options configures the explorer.
type Options struct {
	// Builder lays out the visualization. Nil uses random jitter.
	Builder *diagram.Builder
	Logger  *zap.Logger
}

// Screen implements screen.Screen for the explorer.
type Screen struct {
	advisor Advisor
	machine *shell.Machine
	builder *diagram.Builder
	input   components.TextInput
	logger  *zap.Logger
	frame   int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates an explorer screen. Request contexts derive from ctx so that
// quitting the program cancels a request in flight.
func New(ctx context.Context, advisor Advisor, opts Options) *Screen {
	if opts.Builder == nil {
		opts.Builder = diagram.NewBuilder(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Screen{
		advisor: advisor,
		machine: shell.New(ctx),
		builder: opts.Builder,
		input:   components.NewTextInput("e.g. JavaScript, SQL, Figma", 500),
		logger:  opts.Logger,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Title() string {
	return "Skill Explorer"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Analyze"}}
	if s.machine.ShowReset() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Reset"})
	}
	if s.hasPaths() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+P", Description: "Career paths"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceMsg:
		if !s.machine.Resolve(msg.Generation, msg.Advice, msg.Err) {
			s.logger.Debug("dropping stale advice", zap.Uint64("generation", msg.Generation))
			return s, nil
		}
		if msg.Err != nil {
			s.logger.Warn("career advice failed", zap.Error(msg.Err))
		}
		return s, nil

	case spinnerTickMsg:
		if !s.machine.Loading() {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "ctrl+r":
			if s.machine.ShowReset() {
				s.machine.Reset()
				s.input.Reset()
			}
			return s, nil
		case "ctrl+p":
			if s.hasPaths() {
				paths := NewPathsScreen(s.machine.Advice().CareerPaths)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: paths} }
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit starts a request for the current input. It is a no-op while a
// request is in flight or when the input holds no skills.
func (s *Screen) submit() tea.Cmd {
	s.machine.SetInput(s.input.Value())
	ticket, ok := s.machine.Submit()
	if !ok {
		return nil
	}
	s.frame = 0
	s.logger.Info("requesting career advice",
		zap.Strings("skills", ticket.Skills),
		zap.Uint64("generation", ticket.Generation),
	)
	return tea.Batch(s.request(ticket), spinnerTick())
}

func (s *Screen) request(t shell.Ticket) tea.Cmd {
	advisor := s.advisor
	return func() tea.Msg {
		adv, err := advisor.RequestCareerAdvice(t.Ctx, t.Skills)
		return adviceMsg{Generation: t.Generation, Advice: adv, Err: err}
	}
}

func (s *Screen) hasPaths() bool {
	adv := s.machine.Advice()
	return s.machine.Phase() == shell.PhaseReady && adv != nil && len(adv.CareerPaths) > 0
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
