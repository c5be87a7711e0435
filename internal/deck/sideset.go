package deck

// SideSet is an insertion-ordered set of card sides. Set semantics dedupe
// faces returned twice by a lookup; the preserved order keeps art-card
// collapse deterministic.
type SideSet struct {
	sides []CardSide
}

// Add appends the side unless an equal side is already present.
func (s *SideSet) Add(side CardSide) bool {
	if s.Contains(side) {
		return false
	}
	s.sides = append(s.sides, side)
	return true
}

// Contains reports whether an equal side is present.
func (s *SideSet) Contains(side CardSide) bool {
	for _, existing := range s.sides {
		if existing == side {
			return true
		}
	}
	return false
}

// First returns the earliest-inserted side.
func (s *SideSet) First() (CardSide, bool) {
	if len(s.sides) == 0 {
		return CardSide{}, false
	}
	return s.sides[0], true
}

// Len returns the number of distinct sides.
func (s *SideSet) Len() int { return len(s.sides) }

// Clear removes all sides.
func (s *SideSet) Clear() { s.sides = nil }

// Slice returns the sides in insertion order. The returned slice is a copy.
func (s *SideSet) Slice() []CardSide {
	out := make([]CardSide, len(s.sides))
	copy(out, s.sides)
	return out
}
