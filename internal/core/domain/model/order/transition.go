package order

// Transition describes what a call to ChangeStatus or Tick did to an order.
type Transition struct {
	From Status
	To   Status

	// CountdownChanged is set when the processing time was decremented.
	CountdownChanged bool
}

// StatusChanged reports whether the status moved.
func (t Transition) StatusChanged() bool {
	return t.From != t.To
}

// Completed reports the first entry into Done. Completion side effects
// (table release, chef load decrement) must run if and only if this is true.
func (t Transition) Completed() bool {
	return t.From != Done && t.To == Done
}

// Mutated reports whether anything needs to be persisted.
func (t Transition) Mutated() bool {
	return t.StatusChanged() || t.CountdownChanged
}
