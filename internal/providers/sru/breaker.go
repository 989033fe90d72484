package sru

// breaker is the per-call circuit breaker: a counter of consecutive
// empty query stages against a configured threshold. Once tripped, the
// remaining stages and fallback term variants are skipped for this
// provider in this call. The state lives for one Fetch invocation
// only; it does not persist or learn across calls.
type breaker struct {
	threshold        int
	consecutiveEmpty int
}

func newBreaker(threshold int) *breaker {
	return &breaker{threshold: threshold}
}

// recordEmpty counts an empty stage and reports whether the breaker
// tripped as a result.
func (b *breaker) recordEmpty() bool {
	b.consecutiveEmpty++
	return b.tripped()
}

// recordHit resets the consecutive-empty counter.
func (b *breaker) recordHit() {
	b.consecutiveEmpty = 0
}

// tripped reports whether the empty-stage threshold has been reached.
func (b *breaker) tripped() bool {
	return b.threshold > 0 && b.consecutiveEmpty >= b.threshold
}
