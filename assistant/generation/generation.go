package generation

// Options tune a single completion. Zero values leave the backend default.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Merge fills the zero fields of o from defaults
func (o Options) Merge(defaults Options) Options {
	if o.Model == "" {
		o.Model = defaults.Model
	}
	if o.Temperature == 0 {
		o.Temperature = defaults.Temperature
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = defaults.MaxTokens
	}
	return o
}
