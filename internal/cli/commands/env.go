// Package commands implements the fluent subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/hasbyte1/go-fluent/collections"
	"github.com/hasbyte1/go-fluent/config"
)

// Env is the state shared by every subcommand: the resolved configuration,
// the logger and the registry holding loaded macros.
type Env struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *collections.Registry
}

type envKey struct{}

// WithEnv stores env in ctx.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// EnvFrom returns the Env stored in ctx, or one built from defaults.
func EnvFrom(ctx context.Context) *Env {
	if ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok {
			return env
		}
	}
	return &Env{
		Config: &config.Config{
			Separator: ".",
			MacrosDir: config.DefaultMacrosDir,
			Output:    config.DefaultOutput,
		},
		Logger:   slog.New(slog.DiscardHandler),
		Registry: collections.NewRegistry(),
	}
}
