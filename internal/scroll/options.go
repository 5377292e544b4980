package scroll

import (
	"time"

	"github.com/Iron-Ham/lazyfeed/internal/debounce"
	"github.com/Iron-Ham/lazyfeed/internal/logging"
)

// DefaultDebounce is the quiet interval used when none is configured.
const DefaultDebounce = 250 * time.Millisecond

// Config is the immutable configuration of one Controller.
type Config struct {
	// Leeway is the percentage before the true end at which loading starts.
	Leeway Leeway
	// Debounce is the quiet interval before a scroll burst is evaluated.
	Debounce time.Duration
	// UseDocument selects the document viewport as the target.
	UseDocument bool
	// Element is an explicit target. It takes precedence over UseDocument.
	Element ElementID
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{Debounce: DefaultDebounce}
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	cfg       Config
	scheduler debounce.Scheduler
	logger    *logging.Logger
	hook      func(State)
}

// WithConfig replaces the whole Config. Later options still apply on top.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLeeway sets the leeway. Values outside 0..100 are clamped.
func WithLeeway(l Leeway) Option {
	return func(o *options) {
		o.cfg.Leeway = l
	}
}

// WithDebounce sets the quiet interval. A negative value is replaced with
// DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.cfg.Debounce = d
	}
}

// WithElement observes an explicit element.
func WithElement(id ElementID) Option {
	return func(o *options) {
		o.cfg.Element = id
	}
}

// WithDocument observes the document viewport.
func WithDocument(use bool) Option {
	return func(o *options) {
		o.cfg.UseDocument = use
	}
}

// WithScheduler sets the scheduler used for debouncing and for delivering
// loader completions. Defaults to debounce.SystemScheduler.
func WithScheduler(s debounce.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithLogger sets the logger for the controller.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStateHook registers fn to receive a snapshot after every state change.
// fn runs outside the controller lock and is never called after Teardown.
func WithStateHook(fn func(State)) Option {
	return func(o *options) {
		o.hook = fn
	}
}
