package service

// Smoother computes a smoothed conditional probability from sparse counts.
type Smoother interface {
	// Smooth computes the smoothed probability of an event.
	// jointCount: count of the event itself
	// contextCount: count of its conditioning context
	// scale: denominator scale (vocabulary size or total word mass,
	// depending on the estimator)
	Smooth(jointCount, contextCount, scale float64) float64

	// Name returns the name of the smoothing algorithm.
	Name() string
}

// AddDeltaSmoother implements additive (Lidstone) smoothing: a small
// constant delta is added to every count before normalizing, reserving
// probability mass for unseen events.
type AddDeltaSmoother struct {
	delta float64
}

// NewAddDeltaSmoother creates an additive smoother with the given delta.
func NewAddDeltaSmoother(delta float64) *AddDeltaSmoother {
	if delta <= 0 {
		delta = 1.0 // Laplace smoothing
	}
	return &AddDeltaSmoother{delta: delta}
}

func (s *AddDeltaSmoother) Smooth(jointCount, contextCount, scale float64) float64 {
	return (jointCount + s.delta) / (contextCount + scale*s.delta)
}

// Delta returns the smoothing constant.
func (s *AddDeltaSmoother) Delta() float64 {
	return s.delta
}

func (s *AddDeltaSmoother) Name() string {
	return "AddDelta"
}
