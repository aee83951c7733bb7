package starmacro

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/hasbyte1/go-fluent/collections"
)

// LoadError is returned when a macro file cannot be loaded.
type LoadError struct {
	File    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("macros/%s: %s", filepath.Base(e.File), e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// phasesGlobal names the optional dict mapping function names to phases.
const phasesGlobal = "_phases"

// containerLocal is the thread-local key holding the calling Container.
const containerLocal = "fluent.container"

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Loader discovers and registers Starlark macro files.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// NewLoader returns a Loader for dir. A nil logger discards output.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{dir: dir, logger: logger}
}

// Load executes every *.star file in the directory and registers its
// exported functions into reg. It returns the registered operation names in
// sorted order. A missing directory registers nothing.
func (l *Loader) Load(reg *collections.Registry) ([]string, error) {
	info, err := os.Stat(l.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat macros directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("macros path is not a directory: %s", l.dir)
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.star"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob macro files: %w", err)
	}
	sort.Strings(files)

	var names []string
	for _, file := range files {
		loaded, err := l.loadFile(file, reg)
		if err != nil {
			return nil, err
		}
		names = append(names, loaded...)
	}
	sort.Strings(names)
	return names, nil
}

func (l *Loader) loadFile(path string, reg *collections.Registry) ([]string, error) {
	namespace := strings.TrimSuffix(filepath.Base(path), ".star")
	if !namespacePattern.MatchString(namespace) {
		return nil, &LoadError{
			File:    path,
			Message: fmt.Sprintf("invalid namespace name %q: must start with a letter or underscore and contain only letters, digits and underscores", namespace),
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err), Err: err}
	}

	thread := &starlark.Thread{
		Name:  "macros/" + namespace,
		Print: func(_ *starlark.Thread, msg string) { l.logger.Debug(msg, "macro", namespace) },
	}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, path, content, Builtins())
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("execution error: %v", err), Err: err}
	}

	phases, err := readPhases(globals)
	if err != nil {
		return nil, &LoadError{File: path, Message: err.Error(), Err: err}
	}

	var names []string
	for _, name := range globals.Keys() {
		if strings.HasPrefix(name, "_") {
			continue
		}
		fn, ok := globals[name].(starlark.Callable)
		if !ok {
			continue
		}
		phase := phases[name]
		delete(phases, name)
		opts, err := phaseOption(phase)
		if err != nil {
			return nil, &LoadError{File: path, Message: fmt.Sprintf("function %s: %v", name, err), Err: err}
		}

		opName := namespace + "." + name
		reg.Register(opName, operation(opName, fn), opts...)
		l.logger.Debug("registered macro", "op", opName, "phase", phase)
		names = append(names, opName)
	}
	if len(phases) > 0 {
		unknown := make([]string, 0, len(phases))
		for name := range phases {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, &LoadError{File: path, Message: fmt.Sprintf("%s names unknown functions %q", phasesGlobal, unknown)}
	}
	return names, nil
}

func readPhases(globals starlark.StringDict) (map[string]string, error) {
	v, ok := globals[phasesGlobal]
	if !ok {
		return map[string]string{}, nil
	}
	dict, ok := v.(*starlark.Dict)
	if !ok {
		return nil, fmt.Errorf("%s must be a dict, got %s", phasesGlobal, v.Type())
	}
	phases := make(map[string]string, dict.Len())
	for _, item := range dict.Items() {
		name, ok1 := starlark.AsString(item[0])
		phase, ok2 := starlark.AsString(item[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%s entries must map strings to strings", phasesGlobal)
		}
		phases[name] = phase
	}
	return phases, nil
}

func phaseOption(phase string) ([]collections.OperationOption, error) {
	p, err := collections.ParsePhase(phase)
	if err != nil {
		return nil, err
	}
	switch p {
	case collections.PhaseFilter:
		return []collections.OperationOption{collections.AsFilter()}, nil
	case collections.PhaseUpdate:
		return []collections.OperationOption{collections.AsUpdate()}, nil
	}
	return []collections.OperationOption{collections.AsAction()}, nil
}

// operation adapts a Starlark callable to a registered operation. The
// function receives the container value followed by the call arguments.
func operation(name string, fn starlark.Callable) collections.OperationFunc {
	return func(c *collections.Container, args ...any) (any, error) {
		value, err := ToStarlark(c.Raw())
		if err != nil {
			return nil, err
		}
		params := make(starlark.Tuple, 0, len(args)+1)
		params = append(params, value)
		for i, arg := range args {
			sv, err := ToStarlark(arg)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i+1, err)
			}
			params = append(params, sv)
		}

		thread := &starlark.Thread{Name: name}
		thread.SetLocal(containerLocal, c)
		result, err := starlark.Call(thread, fn, params, nil)
		if err != nil {
			var evalErr *starlark.EvalError
			if errors.As(err, &evalErr) {
				return nil, fmt.Errorf("%s: %s", name, evalErr.Msg)
			}
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return ToGo(result)
	}
}
