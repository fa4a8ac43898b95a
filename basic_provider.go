package summary

import (
	"sort"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.uber.org/atomic"
)

// BasicProvider is an in-memory implementation of Provider and Inspector.
// It is concurrency-safe and suitable for services, tests and examples.
// Summaries are created on demand by full name and reused for the same name;
// options passed on later calls for an existing name are ignored.
type BasicProvider struct {
	cfg    *basicProviderConfig
	logger log.Logger

	summaries sync.Map // map[string]*Summary
	meta      sync.Map // map[string]Metadata
	// per-key init mutexes: protect concurrent initialization for the same key
	inits sync.Map // map[string]*sync.Mutex
	// invariant violation report counters
	violations sync.Map // map[string]*atomic.Int32
}

// NewBasicProvider constructs a new BasicProvider.
// Accepts optional functional options to customize behavior.
func NewBasicProvider(opts ...BasicProviderOption) *BasicProvider {
	cfg := &basicProviderConfig{}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	return &BasicProvider{cfg: cfg, logger: newProviderLogger(cfg.logger)}
}

// keyMu returns a per-key mutex for the given key, creating one if necessary.
// The returned mutex is owned by the provider and should be locked/unlocked by callers.
func (p *BasicProvider) keyMu(key string) *sync.Mutex {
	m, _ := p.inits.LoadOrStore(key, &sync.Mutex{})
	return m.(*sync.Mutex)
}

func (p *BasicProvider) get(key string) (*Summary, bool) {
	if v, ok := p.summaries.Load(key); ok {
		s, ok := v.(*Summary)
		return s, ok
	}
	return nil, false
}

// Summary returns the summary with the given name, creating it on first use.
// The lookup key is the full name, including namespace and subsystem.
// Configuration errors are returned and nothing is stored.
func (p *BasicProvider) Summary(name string, opts ...Option) (*Summary, error) {
	// build options off-lock to avoid holding the per-key mutex while applying them
	o := Opts{Name: name}
	applyOptions(&o, p.cfg.defaults)
	applyOptions(&o, opts)
	if o.Logger == nil && p.cfg.logger != nil {
		o.Logger = p.cfg.logger
	}
	return p.getOrCreate(o.fullName(), o)
}

// MustSummary is like Summary but panics on configuration errors.
func (p *BasicProvider) MustSummary(name string, opts ...Option) *Summary {
	s, err := p.Summary(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// getOrCreate implements a fast read path and uses a per-key mutex to
// deduplicate concurrent initializations of the same key.
func (p *BasicProvider) getOrCreate(key string, o Opts) (*Summary, error) {
	// fast read path using sync.Map loads (safe without a global lock)
	if s, ok := p.get(key); ok {
		return s, nil
	}

	km := p.keyMu(key)
	km.Lock()
	defer km.Unlock()

	// re-check after acquiring per-key mutex
	if s, ok := p.get(key); ok {
		return s, nil
	}

	s, err := NewFromOpts(o)
	if err != nil {
		if !p.cfg.doNotCleanupInits {
			p.inits.Delete(key)
		}
		return nil, err
	}
	p.meta.Store(key, metadataOf(s))
	p.summaries.Store(key, s)
	// optional cleanup: remove the per-key mutex from the inits map to allow GC of mutexes
	// It's safe to delete while holding the mutex; existing goroutines that already
	// hold the pointer will continue to use it, and new callers will get a new mutex.
	if !p.cfg.doNotCleanupInits {
		p.inits.Delete(key)
	}
	level.Debug(p.logger).Log("msg", "created summary", "name", key)
	return s, nil
}

// Unregister removes the summary with the given full name. It reports whether
// a summary was removed. References held by callers keep working but are no
// longer collected through the provider.
func (p *BasicProvider) Unregister(name string) bool {
	km := p.keyMu(name)
	km.Lock()
	defer km.Unlock()

	_, ok := p.summaries.LoadAndDelete(name)
	p.meta.Delete(name)
	if !p.cfg.doNotCleanupInits {
		p.inits.Delete(name)
	}
	if ok {
		level.Debug(p.logger).Log("msg", "unregistered summary", "name", name)
	}
	return ok
}

// Snapshots reads every registered summary, ordered by name.
func (p *BasicProvider) Snapshots() []FamilySnapshot {
	var all []*Summary
	p.summaries.Range(func(_, v interface{}) bool {
		if s, ok := v.(*Summary); ok {
			all = append(all, s)
		}
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })

	out := make([]FamilySnapshot, 0, len(all))
	for _, s := range all {
		out = append(out, s.Snapshot())
	}
	return out
}

// Collect renders every registered summary, ordered by name.
func (p *BasicProvider) Collect() []MetricFamilySamples {
	snaps := p.Snapshots()
	out := make([]MetricFamilySamples, 0, len(snaps))
	for _, fs := range snaps {
		out = append(out, fs.Samples())
	}
	return out
}

// reportInvariantViolation reports unexpected internal states such as
// "summary exists but meta missing". In release builds it logs up to 10 times per key;
// in debug builds (or under race detector) it panics to catch bugs early.
func (p *BasicProvider) reportInvariantViolation(kind, key string) {
	// Avoid spamming logs for the same key
	const maxReports = 10
	v, _ := p.violations.LoadOrStore(kind+":"+key, atomic.NewInt32(0))
	if v.(*atomic.Int32).Inc() > maxReports {
		return
	}

	msg := "[summary] invariant violation: " + kind + " for " + key

	// In debug builds, fail fast.
	if isDebugBuild() {
		panic(msg)
	}

	// In release builds, just log a warning.
	level.Warn(p.logger).Log("msg", "invariant violation", "kind", kind, "summary", key)
}

// isDebugBuild reports whether we're in a "debug" or "race" build.
// This uses Go's built-in race detector flag or a debug build tag.
func isDebugBuild() bool {
	return raceBuild || debugBuild
}
