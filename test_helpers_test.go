package summary

// test helper: read metadata stored under the summary's full name.
// Placed in a _test.go file so it is test-only and not part of the public API.
func metaLoad(p *BasicProvider, name string) (Metadata, bool) {
	v, ok := p.meta.Load(name)
	if !ok {
		return Metadata{}, false
	}
	md, ok := v.(Metadata)
	return md, ok
}
