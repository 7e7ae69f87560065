package engine

import "time"

// expiry is the cooperative dismiss countdown. The loop owns it; nothing else
// touches it.
type expiry struct {
	deadline time.Time
	armed    bool
}

// arm sets the deadline, replacing any earlier one.
func (x *expiry) arm(deadline time.Time) {
	x.deadline = deadline
	x.armed = true
}

// due reports whether an armed deadline has been reached.
func (x *expiry) due(now time.Time) bool {
	return x.armed && !now.Before(x.deadline)
}

func (x *expiry) disarm() {
	x.armed = false
	x.deadline = time.Time{}
}
