package build

import (
	"context"
	"fmt"

	"github.com/reactor-labs/reactor/internal/logger"
	"github.com/reactor-labs/reactor/internal/report"
)

// State is the position of a pipeline run.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateCompiling  State = "compiling"
	StatePackaging  State = "packaging"
	StateLaunching  State = "launching"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// IsTerminal reports whether s ends a run.
func IsTerminal(s State) bool {
	return s == StateDone || s == StateFailed
}

func isAllowedTransition(from, to State) bool {
	if to == StateFailed {
		return !IsTerminal(from)
	}
	if from == to {
		return !IsTerminal(from) && from != StateIdle
	}
	switch from {
	case StateIdle:
		return to == StateValidating
	case StateValidating:
		return to == StateCompiling || to == StateLaunching
	case StateCompiling:
		return to == StatePackaging || to == StateDone
	case StatePackaging, StateLaunching:
		return to == StateDone
	default:
		return false
	}
}

// Stage is one step of a pipeline.
type Stage struct {
	State State
	Name  string
	Run   func(ctx context.Context) error
}

// Pipeline runs stages in order and stops at the first failure.
type Pipeline struct {
	Name     string
	Stages   []Stage
	Reporter *report.Reporter

	state   State
	history []State
}

// NewPipeline returns an idle pipeline.
func NewPipeline(name string, rep *report.Reporter, stages ...Stage) *Pipeline {
	if rep == nil {
		rep = report.Discard()
	}
	return &Pipeline{Name: name, Stages: stages, Reporter: rep, state: StateIdle}
}

// State returns the current state.
func (p *Pipeline) State() State { return p.state }

// History returns every distinct state entered, in order.
func (p *Pipeline) History() []State { return append([]State(nil), p.history...) }

func (p *Pipeline) transition(to State) error {
	if p.state == "" {
		p.state = StateIdle
	}
	if !isAllowedTransition(p.state, to) {
		return fmt.Errorf("%s: disallowed transition %s -> %s", p.Name, p.state, to)
	}
	if p.state != to {
		logger.Debug("pipeline transition", "pipeline", p.Name, "from", p.state, "to", to)
		p.history = append(p.history, to)
	}
	p.state = to
	return nil
}

// Run executes every stage. Cancellation of ctx is checked between stages.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, st := range p.Stages {
		if err := p.transition(st.State); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			p.fail()
			return err
		}
		p.Reporter.Step("%s", st.Name)
		if err := st.Run(ctx); err != nil {
			p.fail()
			return err
		}
	}
	return p.transition(StateDone)
}

func (p *Pipeline) fail() {
	_ = p.transition(StateFailed)
}
