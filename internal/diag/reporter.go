package diag

// Reporter is the minimal contract a pipeline stage uses to emit
// diagnostics without depending on how they are ultimately stored — the
// lexer and parser take a Reporter, not a *Bag, so tests can substitute a
// recording stub. The analyzer and IR generator return their diagnostics
// as slices instead.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a *Bag to the Reporter interface.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards every diagnostic; useful where a stage is invoked
// only for its non-diagnostic output.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
