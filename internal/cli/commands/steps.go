package commands

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var stepName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Step is one operation call parsed from the command line.
type Step struct {
	Name string
	Args []any
}

func (s Step) String() string {
	return fmt.Sprintf("%s%v", s.Name, s.Args)
}

// ParseStep parses `name` or `name(arg, ...)`. The argument list is read as
// a YAML flow sequence, so strings may be quoted or bare and numbers, booleans,
// null, [lists] and {maps} keep their types:
//
//	where("age", ">=", 18)
//	sortBy(name)
//	whereIn(color, [red, blue])
func ParseStep(s string) (Step, error) {
	s = strings.TrimSpace(s)
	name, rest, hasArgs := strings.Cut(s, "(")
	name = strings.TrimSpace(name)
	if !stepName.MatchString(name) {
		return Step{}, fmt.Errorf("invalid step %q: bad operation name", s)
	}
	if !hasArgs {
		return Step{Name: name}, nil
	}
	inner, ok := strings.CutSuffix(strings.TrimSpace(rest), ")")
	if !ok {
		return Step{}, fmt.Errorf("invalid step %q: missing closing parenthesis", s)
	}

	var args []any
	if err := yaml.Unmarshal([]byte("["+inner+"]"), &args); err != nil {
		return Step{}, fmt.Errorf("invalid step %q: %w", s, err)
	}
	if args == nil {
		args = []any{}
	}
	return Step{Name: name, Args: args}, nil
}
