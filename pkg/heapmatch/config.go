package heapmatch

import "github.com/hashicorp/go-hclog"

// Config bundles the matcher's one tuning knob together with the
// ambient collaborators a real deployment wants: a logger for tracing the
// backtracking search, and the fresh-identifier generator used by the
// unfold branch and the parameter synthesiser. It is built with functional
// options (NewConfig) so new knobs can be added without breaking callers;
// only AbsStruct is an exported field.
type Config struct {
	// AbsStruct > 0 enables the field-forgetting approximation in
	// FselMatch: a left field the right list lacks is dropped, and
	// leftover left fields are accepted once the right list is exhausted.
	// AbsStruct == 0 (the NewConfig default) disables both. Field
	// forgetting is deliberately unsound and stays caller-visible.
	AbsStruct int

	logger hclog.Logger
	fresh  *FreshGen
}

// Option configures a Config.
type Option func(*Config)

// WithAbsStruct sets the field-forgetting level.
func WithAbsStruct(level int) Option {
	return func(c *Config) { c.AbsStruct = level }
}

// WithLogger attaches an hclog.Logger the matcher will emit Trace
// entries to at its key decision points: empty-branch vs unfold-branch
// choices in the spatial matcher, and correspondence choices in the
// isomorphism finder. A nil logger is replaced with hclog.NewNullLogger().
func WithLogger(l hclog.Logger) Option {
	return func(c *Config) {
		if l == nil {
			l = hclog.NewNullLogger()
		}
		c.logger = l
	}
}

// WithFreshGen supplies an explicit identifier generator, letting a
// caller share one generator across several matches so that fresh
// identifiers minted by each match never collide.
func WithFreshGen(g *FreshGen) Option {
	return func(c *Config) { c.fresh = g }
}

// NewConfig builds a Config, applying options over these defaults:
// AbsStruct 0 (field forgetting disabled), a null logger, and a private
// FreshGen.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		logger: hclog.NewNullLogger(),
		fresh:  NewFreshGen(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) log() hclog.Logger {
	if c == nil || c.logger == nil {
		return hclog.NewNullLogger()
	}
	return c.logger
}

func (c *Config) freshGen() *FreshGen {
	if c == nil || c.fresh == nil {
		return NewFreshGen()
	}
	return c.fresh
}

func (c *Config) absStruct() int {
	if c == nil {
		return 0
	}
	return c.AbsStruct
}
