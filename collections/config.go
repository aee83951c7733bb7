package collections

import (
	"log/slog"

	"github.com/hasbyte1/go-fluent/arr"
)

// Config holds the behavioural flags a Container carries.
type Config struct {
	// Separator splits path expressions. Defaults to ".".
	Separator string
	// Strict makes malformed paths fail with [ErrPath] instead of
	// resolving to "not found".
	Strict bool
	// Debug logs every executed step at debug level.
	Debug bool
	// Logger receives debug output. Defaults to a discarding logger.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when no option overrides it.
func DefaultConfig() Config {
	return Config{
		Separator: arr.DefaultSeparator,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

func (cfg Config) resolver() arr.Resolver {
	return arr.Resolver{Separator: cfg.Separator, Strict: cfg.Strict}
}

func (cfg Config) logger() *slog.Logger {
	if cfg.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.Logger
}

// Option configures a Container at construction.
type Option func(*Container)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Container) {
		if cfg.Separator == "" {
			cfg.Separator = arr.DefaultSeparator
		}
		c.cfg = cfg
	}
}

// WithSeparator sets the path separator.
func WithSeparator(sep string) Option {
	return func(c *Container) {
		if sep != "" {
			c.cfg.Separator = sep
		}
	}
}

// WithStrict toggles strict path parsing.
func WithStrict(strict bool) Option {
	return func(c *Container) { c.cfg.Strict = strict }
}

// WithDebug toggles per-step debug logging.
func WithDebug(debug bool) Option {
	return func(c *Container) { c.cfg.Debug = debug }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) { c.cfg.Logger = l }
}

// WithRegistry sets the operation registry consulted for names outside the
// built-in catalogue. Defaults to [DefaultRegistry].
func WithRegistry(r *Registry) Option {
	return func(c *Container) {
		if r != nil {
			c.registry = r
		}
	}
}

// Deferred starts the Container in deferred mode: operations are recorded
// and run by [Container.Materialize].
func Deferred() Option {
	return func(c *Container) {
		if c.pipeline == nil {
			c.pipeline = &Pipeline{}
		}
	}
}
