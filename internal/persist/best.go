package persist

import "errors"

// ErrNotSaved is returned when the store could not be opened for writing.
var ErrNotSaved = errors.New("value could not be saved")

// RecordLowest saves candidate when there is no valid stored value or when
// candidate is lower than it. It returns the best value after the call and
// whether candidate became the new best.
func (s *Scalar) RecordLowest(candidate int) (best int, improved bool, err error) {
	current, outcome, _ := s.Load(0)
	if outcome.OK() && current <= candidate {
		return current, false, nil
	}
	if !s.Save(candidate) {
		return current, false, ErrNotSaved
	}
	return candidate, true, nil
}
