package nexus

// Processor is the contract every worker and format adapter implements.
// It is defined here so that Manager can dispatch to implementations in
// pkg/stream and pkg/pipeline without creating an import cycle.
type Processor interface {
	// ID returns the identifier batches are routed by.
	// Immutable after registration.
	ID() string

	// Kind returns the stable kind label for this processor.
	Kind() string

	// Process consumes one batch and returns a formatted summary.
	// It returns a *ValidationError when the input is malformed.
	Process(data any) (string, error)

	// Stats reports the processor's cumulative counters.
	Stats() map[string]any
}

// Filterer is implemented by processors that support criteria filtering.
type Filterer interface {
	// Filter returns the items of data matching criteria, preserving input
	// order. Empty criteria is the identity.
	Filter(data any, criteria string) any
}
