package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hasbyte1/go-fluent/collections"
	"github.com/hasbyte1/go-fluent/internal/cli/render"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	var steps []string

	cmd := &cobra.Command{
		Use:   "eval [FILE|-]",
		Short: "Apply operations to a JSON or YAML document",
		Long: `Decode a JSON or YAML document, apply each --step through the
container's operation table and print the result.

With --defer the steps are recorded and run as one pipeline: filters first,
then actions, then updates.`,
		Example: `  fluent eval people.json -s 'where("age", ">=", 18)' -s 'sortBy(name)'
  cat people.yaml | fluent eval - -s 'pluck(name)' -o yaml
  fluent eval orders.json --defer -s 'set(1, null)' -s 'whereNotNil(id)'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			return runEval(cmd, source, steps)
		},
	}

	cmd.Flags().StringArrayVarP(&steps, "step", "s", nil, "Operation to apply, e.g. 'where(\"age\", \">\", 30)' (repeatable)")
	cmd.Flags().Bool("defer", false, "Record the steps and run them as one filter/action/update pipeline")

	return cmd
}

func runEval(cmd *cobra.Command, source string, rawSteps []string) error {
	env := EnvFrom(cmd.Context())

	parsed := make([]Step, 0, len(rawSteps))
	for _, raw := range rawSteps {
		step, err := ParseStep(raw)
		if err != nil {
			return err
		}
		parsed = append(parsed, step)
	}

	doc, err := readDocument(cmd.InOrStdin(), source)
	if err != nil {
		return err
	}

	opts := append(env.Config.Options(env.Logger), collections.WithRegistry(env.Registry))
	c := collections.FromValue(doc, opts...)
	for _, step := range parsed {
		env.Logger.Debug("applying step", "step", step.String())
		c = c.Call(step.Name, step.Args...)
	}

	if err := c.Err(); err != nil {
		return err
	}
	if c.IsDeferred() {
		env.Logger.Debug("materializing", "pipeline", c.Pipeline().String())
		out, err := c.Materialize()
		if err != nil {
			return fmt.Errorf("pipeline %s: %w", c.Pipeline(), err)
		}
		c = out
	}

	return render.Render(cmd.OutOrStdout(), render.Format(env.Config.Output), c.Raw(), env.Config.Resolver())
}

// readDocument decodes source ("-" for stdin). Files ending in .json, and
// any input starting with '{' or '[', are read as JSON; everything else as
// YAML.
func readDocument(stdin io.Reader, source string) (any, error) {
	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var doc any
	trimmed := bytes.TrimSpace(data)
	if filepath.Ext(source) == ".json" || bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decoding json input: %w", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml input: %w", err)
	}
	return doc, nil
}
