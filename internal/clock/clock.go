package clock

import "time"

type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Mock always returns FixedNow. Used by tests that depend on "today".
type Mock struct {
	FixedNow time.Time
}

func (m *Mock) Now() time.Time {
	return m.FixedNow
}

func (m *Mock) SetNow(now time.Time) {
	m.FixedNow = now
}

func (m *Mock) Advance(d time.Duration) {
	m.FixedNow = m.FixedNow.Add(d)
}
