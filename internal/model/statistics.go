package model

// Statistics counts days per rating bucket.
type Statistics struct {
	Awesome    int
	Good       int
	Okay       int
	Bad        int
	Horrible   int
	Unrecorded int
}

func (s *Statistics) add(e Entry) {
	rating, ok := e.Rating()
	if !ok {
		s.Unrecorded++
		return
	}
	// Out-of-range ratings are stored as given but fall in no bucket.
	switch rating {
	case RatingAwesome:
		s.Awesome++
	case RatingGood:
		s.Good++
	case RatingOkay:
		s.Okay++
	case RatingBad:
		s.Bad++
	case RatingHorrible:
		s.Horrible++
	}
}

// Count returns the tally for a valid rating.
func (s Statistics) Count(r Rating) int {
	switch r {
	case RatingAwesome:
		return s.Awesome
	case RatingGood:
		return s.Good
	case RatingOkay:
		return s.Okay
	case RatingBad:
		return s.Bad
	case RatingHorrible:
		return s.Horrible
	default:
		return 0
	}
}

// Add merges other into s.
func (s *Statistics) Add(other Statistics) {
	s.Awesome += other.Awesome
	s.Good += other.Good
	s.Okay += other.Okay
	s.Bad += other.Bad
	s.Horrible += other.Horrible
	s.Unrecorded += other.Unrecorded
}

// Recorded returns the number of days counted in a rating bucket.
func (s Statistics) Recorded() int {
	return s.Awesome + s.Good + s.Okay + s.Bad + s.Horrible
}

// Total returns all tallied days.
func (s Statistics) Total() int {
	return s.Recorded() + s.Unrecorded
}

// Mean returns the average rating over recorded days.
func (s Statistics) Mean() (float64, bool) {
	n := s.Recorded()
	if n == 0 {
		return 0, false
	}
	sum := 2*s.Awesome + s.Good - s.Bad - 2*s.Horrible
	return float64(sum) / float64(n), true
}
