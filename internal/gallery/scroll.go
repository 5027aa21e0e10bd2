package gallery

// ScrollPhase is the position of the scroll trigger's state machine.
type ScrollPhase int

const (
	// ScrollAway: the user has not scrolled yet. Nothing fires, so a
	// short initial page cannot trigger a load loop on its own.
	ScrollAway ScrollPhase = iota
	// ScrollArmed: eligible to fire on the next close approach.
	ScrollArmed
	// ScrollFired: fired for the current approach; locked until the
	// viewport retreats past the re-arm threshold.
	ScrollFired
)

// Thresholds in the same length unit as Sample fields (pixels, rows).
const (
	// FireThreshold is how close to the bottom a sample must be to fire.
	FireThreshold = 10.0
	// RearmThreshold is how far from the bottom the viewport must
	// retreat before the trigger can fire again.
	RearmThreshold = 200.0
)

// Sample is one observation of the viewport against the content.
type Sample struct {
	// Offset is the scroll position of the viewport's top edge.
	Offset float64
	// ViewportHeight is the visible height.
	ViewportHeight float64
	// ContentHeight is the total scrollable height.
	ContentHeight float64
	// UserInitiated is true when the sample comes from a manual
	// scroll, as opposed to a layout change or programmatic update.
	UserInitiated bool
}

// BottomDistance is how far the viewport's bottom edge is from the end
// of the content. Never negative.
func (s Sample) BottomDistance() float64 {
	d := s.ContentHeight - s.Offset - s.ViewportHeight
	if d < 0 {
		return 0
	}
	return d
}

// ScrollObserver turns viewport samples into at most one fetch-more
// signal per approach to the bottom. It holds no reference to the
// gallery state; callers forward a true result as a FetchRequested
// event, giving a queue depth of exactly one.
type ScrollObserver struct {
	phase ScrollPhase
}

// NewScrollObserver returns an observer in the ScrollAway phase.
func NewScrollObserver() *ScrollObserver {
	return &ScrollObserver{phase: ScrollAway}
}

// Phase returns the observer's current phase.
func (o *ScrollObserver) Phase() ScrollPhase {
	return o.phase
}

// Observe processes one sample and reports whether a fetch-more should
// be requested.
func (o *ScrollObserver) Observe(s Sample) bool {
	if o.phase == ScrollAway {
		if !s.UserInitiated {
			return false
		}
		o.phase = ScrollArmed
	}

	switch o.phase {
	case ScrollArmed:
		if s.BottomDistance() <= FireThreshold {
			o.phase = ScrollFired
			return true
		}
	case ScrollFired:
		if s.BottomDistance() > RearmThreshold {
			o.phase = ScrollArmed
		}
	}
	return false
}

// Reset returns the observer to ScrollAway, e.g. after the content is
// replaced by a query change.
func (o *ScrollObserver) Reset() {
	o.phase = ScrollAway
}
