package gallery

import "testing"

// sampleAt builds a user scroll sample with the given distance from the
// bottom of 2000px of content in a 600px viewport.
func sampleAt(distance float64, user bool) Sample {
	return Sample{
		Offset:         2000 - 600 - distance,
		ViewportHeight: 600,
		ContentHeight:  2000,
		UserInitiated:  user,
	}
}

func TestScrollObserver_NoFireBeforeManualScroll(t *testing.T) {
	o := NewScrollObserver()

	// Layout-driven samples at the very bottom, as on a short initial
	// page, must not fire.
	for i := 0; i < 3; i++ {
		if o.Observe(sampleAt(0, false)) {
			t.Fatal("fired before any manual scroll")
		}
	}
	if o.Phase() != ScrollAway {
		t.Errorf("expected ScrollAway, got %v", o.Phase())
	}
}

func TestScrollObserver_FiresOncePerApproach(t *testing.T) {
	o := NewScrollObserver()

	if o.Observe(sampleAt(500, true)) {
		t.Fatal("fired far from the bottom")
	}
	if o.Phase() != ScrollArmed {
		t.Fatalf("expected ScrollArmed after manual scroll, got %v", o.Phase())
	}

	if !o.Observe(sampleAt(5, true)) {
		t.Fatal("expected fire within the threshold")
	}

	// Resting at the bottom must not re-fire.
	for i := 0; i < 5; i++ {
		if o.Observe(sampleAt(0, true)) {
			t.Fatal("re-fired while resting at the bottom")
		}
	}
	if o.Phase() != ScrollFired {
		t.Errorf("expected ScrollFired, got %v", o.Phase())
	}
}

func TestScrollObserver_RearmRequiresRetreat(t *testing.T) {
	o := NewScrollObserver()
	o.Observe(sampleAt(500, true))
	o.Observe(sampleAt(0, true)) // fire

	// A small retreat is not enough.
	o.Observe(sampleAt(100, true))
	if o.Observe(sampleAt(5, true)) {
		t.Fatal("re-fired without retreating past the re-arm threshold")
	}

	// Past the threshold the trigger re-arms and can fire again.
	o.Observe(sampleAt(300, true))
	if o.Phase() != ScrollArmed {
		t.Fatalf("expected ScrollArmed after retreat, got %v", o.Phase())
	}
	if !o.Observe(sampleAt(5, true)) {
		t.Fatal("expected a second fire after re-arming")
	}
}

func TestScrollObserver_ExactThresholds(t *testing.T) {
	o := NewScrollObserver()
	o.Observe(sampleAt(500, true))

	if !o.Observe(sampleAt(FireThreshold, true)) {
		t.Error("distance equal to the fire threshold must fire")
	}

	o.Observe(sampleAt(RearmThreshold, true))
	if o.Phase() != ScrollFired {
		t.Error("distance equal to the re-arm threshold must stay locked")
	}
	o.Observe(sampleAt(RearmThreshold+1, true))
	if o.Phase() != ScrollArmed {
		t.Error("distance past the re-arm threshold must re-arm")
	}
}

func TestScrollObserver_Reset(t *testing.T) {
	o := NewScrollObserver()
	o.Observe(sampleAt(500, true))
	o.Observe(sampleAt(0, true))

	o.Reset()

	if o.Phase() != ScrollAway {
		t.Fatalf("expected ScrollAway after reset, got %v", o.Phase())
	}
	if o.Observe(sampleAt(0, false)) {
		t.Error("fired after reset without a manual scroll")
	}
}

func TestSample_BottomDistanceClampsAtZero(t *testing.T) {
	s := Sample{Offset: 5000, ViewportHeight: 600, ContentHeight: 2000}
	if d := s.BottomDistance(); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}
