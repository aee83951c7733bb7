package commands

import (
	"github.com/spf13/cobra"

	"github.com/hasbyte1/go-fluent/collections"
	"github.com/hasbyte1/go-fluent/internal/cli/render"
)

// NewOpsCommand creates the ops command.
func NewOpsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List available operations",
		Long: `List the built-in operations followed by the macros loaded from the
macros directory, with the phase each runs in when deferred. The list is a
table unless --output is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := EnvFrom(cmd.Context())
			format := render.Table
			if cmd.Flags().Changed("output") {
				format = render.Format(env.Config.Output)
			}
			return render.Render(cmd.OutOrStdout(), format, opRows(env.Registry), env.Config.Resolver())
		},
	}
}

func opRows(reg *collections.Registry) []any {
	ops := collections.Catalogue(reg)
	rows := make([]any, 0, len(ops))
	for _, op := range ops {
		source := "builtin"
		if !collections.IsBuiltin(op.Name) {
			source = "macro"
		}
		rows = append(rows, map[string]any{
			"name":          op.Name,
			"phase":         op.Phase.String(),
			"in_place":      op.InPlace,
			"sequence_only": op.SequenceOnly,
			"source":        source,
		})
	}
	return rows
}
