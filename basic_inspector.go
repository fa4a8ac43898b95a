package summary

import "slices"

// copyMetadata makes a defensive copy of Metadata.
func copyMetadata(in Metadata) Metadata {
	return Metadata{
		Help:          in.Help,
		LabelNames:    slices.Clone(in.LabelNames),
		Quantiles:     slices.Clone(in.Quantiles),
		ReservoirSize: in.ReservoirSize,
	}
}

func (p *BasicProvider) getSummaryMeta(key string) (Metadata, bool) {
	m, ok := p.meta.Load(key)
	if !ok {
		// invariant violation: summary without meta
		p.reportInvariantViolation("summary_meta_missing", key)
		return Metadata{}, false
	}

	md, ok2 := m.(Metadata)
	if !ok2 {
		// invariant violation: wrong meta type
		p.reportInvariantViolation("summary_meta_type", key)
		return Metadata{}, false
	}

	return copyMetadata(md), true
}

// SummaryWithMeta implements Inspector.SummaryWithMeta for BasicProvider.
// It acquires the per-key init mutex, then reads both the summary and its
// metadata before unlocking in order to provide a consistent snapshot.
// The third return value is true if and only if both the summary and the meta were found and both valid.
// Invariant violations (e.g., summary exists but meta missing) are reported via logger.
func (p *BasicProvider) SummaryWithMeta(name string) (*Summary, Metadata, bool) {
	km := p.keyMu(name)
	km.Lock()
	defer km.Unlock()
	if !p.cfg.doNotCleanupInits {
		defer p.inits.Delete(name)
	}

	v, ok := p.summaries.Load(name)
	if !ok {
		// not created
		return nil, Metadata{}, false
	}

	s, ok2 := v.(*Summary)
	if !ok2 {
		// invariant violation: wrong type in map
		p.reportInvariantViolation("summary_type", name)
		return nil, Metadata{}, false
	}

	md, okOverall := p.getSummaryMeta(name)

	return s, md, okOverall
}

// ListMetadata returns a best-effort snapshot of metadata entries. It does not
// acquire per-key init mutexes for each entry; callers should treat the result
// as a point-in-time snapshot that may race with concurrent creations.
func (p *BasicProvider) ListMetadata() []Entry {
	out := make([]Entry, 0)
	p.meta.Range(func(k, v interface{}) bool {
		name, ok := k.(string)
		md, ok2 := v.(Metadata)
		if !ok || !ok2 {
			return true // skip invalid entries
		}

		out = append(out, Entry{Name: name, Metadata: copyMetadata(md)})
		return true
	})
	return out
}
