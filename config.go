package plog

import "slices"

const DEFAULT_TAG = "PLOG"

// Option changes a Config under construction.
type Option func(*Config)

// Config is the immutable snapshot a Logger works with. Build one with
// NewConfig and derive changed copies with With; a Config is never modified
// after it has been built, so loggers can share it freely.
type Config struct {
	level        Level
	tag          string
	withThread   bool
	withStack    bool
	withBorder   bool
	stackOrigin  string
	stackDepth   int
	interceptors []Interceptor
	objects      objectFormatters

	json   JSONFormatter
	xml    XMLFormatter
	err    ErrorFormatter
	thread ThreadFormatter
	stack  StackTraceFormatter
	border BorderFormatter
}

// NewConfig returns the default config (everything printed, tag "PLOG", no
// thread/stack/border, default formatters) with opts applied.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		level:  LVL_ALL,
		tag:    DEFAULT_TAG,
		json:   DefaultJSONFormatter,
		xml:    DefaultXMLFormatter,
		err:    DefaultErrorFormatter,
		thread: DefaultThreadFormatter,
		stack:  DefaultStackTraceFormatter,
		border: DefaultBorderFormatter,
	}
	return c.apply(opts)
}

// With returns a copy of c with opts applied; c itself is untouched.
func (c *Config) With(opts ...Option) *Config {
	cp := *c
	cp.interceptors = slices.Clone(c.interceptors)
	return cp.apply(opts)
}

func (c *Config) apply(opts []Option) *Config {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Config) Level() Level                { return c.level }
func (c *Config) Tag() string                 { return c.tag }
func (c *Config) Interceptors() []Interceptor { return slices.Clone(c.interceptors) }

// WithLevel sets the threshold: entries below it are skipped.
func WithLevel(level Level) Option {
	return func(c *Config) { c.level = level }
}

// WithTag sets the tag used when the caller passes an empty one. An empty
// tag keeps the previous value.
func WithTag(tag string) Option {
	return func(c *Config) {
		if tag != "" {
			c.tag = tag
		}
	}
}

func WithThread(enabled bool) Option {
	return func(c *Config) { c.withThread = enabled }
}

// WithStackTrace enables call stack capture. Frames of functions starting
// with origin are cropped as well (for helpers wrapping the logger); depth
// limits the number of frames kept, 0 keeps all.
func WithStackTrace(origin string, depth int) Option {
	return func(c *Config) {
		c.withStack = true
		c.stackOrigin = origin
		c.stackDepth = max(depth, 0)
	}
}

// WithoutStackTrace turns stack capture off.
func WithoutStackTrace() Option {
	return func(c *Config) { c.withStack = false }
}

func WithBorder(enabled bool) Option {
	return func(c *Config) { c.withBorder = enabled }
}

// WithInterceptors appends interceptors to the chain.
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(c *Config) {
		c.interceptors = append(slices.Clip(c.interceptors), interceptors...)
	}
}

// WithoutInterceptors empties the chain.
func WithoutInterceptors() Option {
	return func(c *Config) { c.interceptors = nil }
}

// The formatter options ignore nil so a partially filled formatter set can
// be applied blindly.

func WithJSONFormatter(f JSONFormatter) Option {
	return func(c *Config) { c.json = cmpOr(f, c.json) }
}

func WithXMLFormatter(f XMLFormatter) Option {
	return func(c *Config) { c.xml = cmpOr(f, c.xml) }
}

func WithErrorFormatter(f ErrorFormatter) Option {
	return func(c *Config) { c.err = cmpOr(f, c.err) }
}

func WithThreadFormatter(f ThreadFormatter) Option {
	return func(c *Config) { c.thread = cmpOr(f, c.thread) }
}

func WithStackTraceFormatter(f StackTraceFormatter) Option {
	return func(c *Config) { c.stack = cmpOr(f, c.stack) }
}

func WithBorderFormatter(f BorderFormatter) Option {
	return func(c *Config) { c.border = cmpOr(f, c.border) }
}

func cmpOr[F any](f F, def F) F {
	if isNil(f) {
		return def
	}
	return f
}
