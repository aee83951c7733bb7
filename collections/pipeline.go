package collections

import (
	"fmt"
	"strings"
)

// Phase orders recorded steps. Materialization runs every filter, then
// every action, then every update.
type Phase int

const (
	PhaseFilter Phase = iota
	PhaseAction
	PhaseUpdate
)

func (p Phase) String() string {
	switch p {
	case PhaseFilter:
		return "filter"
	case PhaseAction:
		return "action"
	case PhaseUpdate:
		return "update"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// ParsePhase parses "filter", "action" or "update".
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "filter", "filters":
		return PhaseFilter, nil
	case "action", "actions", "":
		return PhaseAction, nil
	case "update", "updates":
		return PhaseUpdate, nil
	}
	return 0, argError("unknown phase %q", s)
}

// applyFunc computes a step's result from the container wrapping its input.
type applyFunc func(in *Container) (any, error)

// prepareFunc validates an argument list once, when the call is made, and
// returns the step body.
type prepareFunc func(c *Container, args []any) (applyFunc, error)

// Step is one recorded operation.
type Step struct {
	Name         string
	Args         []any
	Phase        Phase
	InPlace      bool
	SequenceOnly bool

	apply applyFunc
}

func (s Step) String() string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = formatArg(a)
	}
	return fmt.Sprintf("%s(%s)", s.Name, strings.Join(args, ", "))
}

func formatArg(a any) string {
	switch t := a.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case nil:
		return "nil"
	}
	if isFunc(a) {
		return "func"
	}
	return fmt.Sprint(a)
}

// Pipeline holds the steps recorded by a deferred Container, one ordered
// list per phase.
type Pipeline struct {
	filters []Step
	actions []Step
	updates []Step
}

func (p *Pipeline) add(s Step) {
	switch s.Phase {
	case PhaseFilter:
		p.filters = append(p.filters, s)
	case PhaseUpdate:
		p.updates = append(p.updates, s)
	default:
		p.actions = append(p.actions, s)
	}
}

// Len returns the number of recorded steps.
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.filters) + len(p.actions) + len(p.updates)
}

// Steps returns the recorded steps in execution order.
func (p *Pipeline) Steps() []Step {
	if p == nil {
		return nil
	}
	out := make([]Step, 0, p.Len())
	out = append(out, p.filters...)
	out = append(out, p.actions...)
	return append(out, p.updates...)
}

// String renders the steps in execution order, e.g.
// "where(\"age\", \">\", 30) | sortBy(\"name\") | set(1, \"x\")".
func (p *Pipeline) String() string {
	steps := p.Steps()
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}

func (p *Pipeline) inPlace() bool {
	for _, s := range p.Steps() {
		if s.InPlace {
			return true
		}
	}
	return false
}

func (p *Pipeline) reset() {
	p.filters, p.actions, p.updates = nil, nil, nil
}

// run executes every step against value. When any step writes in place the
// steps run on a deep clone, so value is never modified.
func (p *Pipeline) run(c *Container, value any) (any, error) {
	current := value
	if p.inPlace() {
		current = deepClone(value)
	}
	log := c.cfg.logger()
	if c.cfg.Debug {
		log.Debug("materialize", "steps", p.Len())
	}
	for _, s := range p.Steps() {
		out, err := c.exec(s, current)
		if err != nil {
			if c.cfg.Debug {
				log.Debug("materialize failed", "op", s.Name, "error", err)
			}
			return nil, opError(s.Name, err)
		}
		if s.InPlace {
			out = commitInPlace(current, out)
		}
		current = out
	}
	return current, nil
}
