package combat

// timerEpsilon absorbs float drift so that a window of 0.5s advanced in
// 0.1s steps expires on the fifth step.
const timerEpsilon = 1e-9

// Timer is a countdown advanced explicitly by Tick. A zero Timer is idle.
type Timer struct {
	duration  float64
	remaining float64
	active    bool
	overflow  float64
}

// Start arms the timer for d seconds. Non-positive durations leave it idle.
func (t *Timer) Start(d float64) {
	if t == nil {
		return
	}
	t.overflow = 0
	if d <= 0 {
		t.duration = 0
		t.remaining = 0
		t.active = false
		return
	}
	t.duration = d
	t.remaining = d
	t.active = true
}

// Stop disarms the timer without reporting expiry.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.remaining = 0
	t.active = false
	t.overflow = 0
}

// Tick advances the timer by dt and reports whether it expired during this
// call. Time left over past expiry is available from Overflow.
func (t *Timer) Tick(dt float64) bool {
	if t == nil || !t.active || dt <= 0 {
		return false
	}
	t.remaining -= dt
	if t.remaining > timerEpsilon {
		return false
	}
	t.overflow = -t.remaining
	if t.overflow < timerEpsilon {
		t.overflow = 0
	}
	t.remaining = 0
	t.active = false
	return true
}

func (t *Timer) IsActive() bool {
	return t != nil && t.active
}

func (t *Timer) Remaining() float64 {
	if t == nil {
		return 0
	}
	return t.remaining
}

func (t *Timer) Duration() float64 {
	if t == nil {
		return 0
	}
	return t.duration
}

// Elapsed returns the time run since Start.
func (t *Timer) Elapsed() float64 {
	if t == nil {
		return 0
	}
	return t.duration - t.remaining
}

// Fraction returns remaining/duration in [0,1].
func (t *Timer) Fraction() float64 {
	if t == nil || !t.active || t.duration <= 0 {
		return 0
	}
	return t.remaining / t.duration
}

// Overflow returns how far the last expiring Tick overshot zero.
func (t *Timer) Overflow() float64 {
	if t == nil {
		return 0
	}
	return t.overflow
}
