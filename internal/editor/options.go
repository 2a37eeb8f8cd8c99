package editor

// Default option values.
const (
	DefaultTabStop     = 8
	DefaultIndentWidth = 4
)

// Options are the per-context editing options commands consult.
type Options struct {
	// TabStop is the display width of a tab.
	TabStop int
	// IndentWidth is the width of one indent level; 0 indents with tabs.
	IndentWidth int
	// AlignTab makes align pad with tabs where possible.
	AlignTab bool
	// IncSearch runs regex prompts on every change, not only on validation.
	IncSearch bool
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		TabStop:     DefaultTabStop,
		IndentWidth: DefaultIndentWidth,
		IncSearch:   true,
	}
}

func (o Options) tabStop() int {
	if o.TabStop <= 0 {
		return DefaultTabStop
	}
	return o.TabStop
}
