package valstream

// NumberMode dictates how sources interpret numeric literals.
type NumberMode int

const (
	NumberAuto    NumberMode = iota // u64 for non-negative integers, i64 for negative, f64 otherwise.
	NumberFloat64                   // Every number is an f64 (with potential precision loss).
	NumberText                      // Every number is streamed through Fmt with its literal text.
)

// Severity expresses how a source reacts to a recoverable input problem.
type Severity int

const (
	SeverityIgnore Severity = iota
	SeverityWarn                   // Report to SourceOpt.OnIssue and continue.
	SeverityError                  // Fail the stream.
)

// SourceOpt bundles options understood by the sources under source/.
type SourceOpt struct {
	Numbers        NumberMode
	OnDuplicateKey Severity
	MaxBytes       int64       // 0 means unlimited.
	OnIssue        func(error) // Receives problems reported with SeverityWarn.
}

// FirstSourceOpt returns the first option or the zero value.
func FirstSourceOpt(opts []SourceOpt) SourceOpt {
	if len(opts) > 0 {
		return opts[0]
	}
	return SourceOpt{}
}
