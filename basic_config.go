package summary

import "github.com/go-kit/log"

type basicProviderConfig struct {
	// when false, remove per-key mutex entries from `inits` after initialization to
	// allow GC of mutexes for many ephemeral summary names. Default: false.
	doNotCleanupInits bool
	logger            log.Logger
	// applied to every summary before the per-call options
	defaults []Option
}

// BasicProviderOption configures a BasicProvider constructed by NewBasicProvider.
type BasicProviderOption func(*basicProviderConfig)

// WithInitCleanupDisabled controls whether per-key init mutex entries are removed from
// the provider's internal `inits` map after initialization. When enabled the
// entries are deleted to allow GC of mutexes for ephemeral summary names.
// Init cleanup is enabled by default; this option disables it.
func WithInitCleanupDisabled() BasicProviderOption {
	return func(cfg *basicProviderConfig) { cfg.doNotCleanupInits = true }
}

// WithProviderLogger sets the logger for provider diagnostics. Summaries
// created by the provider inherit it unless they set their own.
func WithProviderLogger(l log.Logger) BasicProviderOption {
	return func(cfg *basicProviderConfig) { cfg.logger = l }
}

// WithDefaultOptions sets options applied to every summary the provider
// creates, e.g. a shared namespace or clock.
func WithDefaultOptions(opts ...Option) BasicProviderOption {
	return func(cfg *basicProviderConfig) { cfg.defaults = append(cfg.defaults, opts...) }
}
