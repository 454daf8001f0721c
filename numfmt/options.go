package numfmt

import "log/slog"

// Options holds configuration for a Formatter.
type Options struct {
	date1904 bool
	logger   *slog.Logger
}

func defaultOptions() *Options {
	return &Options{
		logger: slog.New(slog.DiscardHandler),
	}
}

// Option configures a Formatter.
type Option func(*Options)

// WithDate1904 selects the 1904 date system for date serials.
func WithDate1904(date1904 bool) Option {
	return func(o *Options) { o.date1904 = date1904 }
}

// WithLogger sets the logger that receives translation diagnostics at
// debug level (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}
