package summary

// Inspector provides an optional capability of metadata inspection/snapshot.
// Implementations should return defensive copies of metadata.
// SummaryWithMeta returns the summary (if it exists), a snapshot of its
// metadata, and a flag of whether it was found.
// Snapshot semantics: best-effort at call time.
// Methods must be safe for concurrent use.
type Inspector interface {
	SummaryWithMeta(name string) (*Summary, Metadata, bool)

	// ListMetadata returns enumeration for admin/debug UIs.
	ListMetadata() []Entry
}

// Entry is one registered summary as listed by Inspector.ListMetadata.
type Entry struct {
	Name     string
	Metadata Metadata // defensive copy
}
