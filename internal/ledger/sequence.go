package ledger

// Sequence allocates monotonically increasing positive IDs. The zero value
// starts at 1.
type Sequence struct {
	next int
}

func (s *Sequence) Next() int {
	if s.next < 1 {
		s.next = 1
	}
	id := s.next
	s.next++
	return id
}

// Observe records an ID that already exists so Next never hands it out again.
func (s *Sequence) Observe(id int) {
	if s.next < 1 {
		s.next = 1
	}
	if id >= s.next {
		s.next = id + 1
	}
}

// Peek returns the ID the next call to Next will return.
func (s *Sequence) Peek() int {
	if s.next < 1 {
		return 1
	}
	return s.next
}
