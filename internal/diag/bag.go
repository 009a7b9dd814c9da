package diag

import "sort"

// Bag accumulates diagnostics in production order, per the shared
// diagnostic bus described in spec §3/§7.
type Bag struct {
	items []Diagnostic
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Items returns the accumulated diagnostics in production order. Callers
// must not mutate the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether any diagnostic is fatal.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.IsFatal() {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic is non-fatal.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if !d.IsFatal() {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by position, then severity (errors first), then
// kind, giving deterministic output for snapshot tests. Production order
// (the order callers observe before Sort is called) is the contract spec
// §3 actually requires; Sort is an opt-in convenience for presentation.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.Line != c.Line {
			return a.Line < c.Line
		}
		if a.Column != c.Column {
			return a.Column < c.Column
		}
		if a.Kind.Severity() != c.Kind.Severity() {
			return a.Kind.Severity() > c.Kind.Severity()
		}
		return a.Kind < c.Kind
	})
}

// Merge appends another bag's diagnostics onto this one.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}
