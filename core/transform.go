package core

// Transformer rewrites an event in place before it is rendered. Returning
// false drops the event.
type Transformer interface {
	Transform(e *Event) bool
}

// Chain applies transformers in order, stopping at the first one that drops
// the event.
func Chain(e *Event, transformers ...Transformer) bool {
	for _, tr := range transformers {
		if !tr.Transform(e) {
			return false
		}
	}
	return true
}
