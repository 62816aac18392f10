package domain

// Library is an ordered collection of tracks. Insertion order is device scan
// order and is preserved through enrichment and persistence.
type Library struct {
	Tracks []Track `json:"tracks"`
}

// Len returns the number of tracks in the library.
func (l Library) Len() int { return len(l.Tracks) }

// Empty reports whether the library holds no tracks.
func (l Library) Empty() bool { return len(l.Tracks) == 0 }

// Clone returns a deep copy so callers can hand out the library without
// exposing the backing slice.
func (l Library) Clone() Library {
	if l.Tracks == nil {
		return Library{}
	}
	tracks := make([]Track, len(l.Tracks))
	copy(tracks, l.Tracks)
	return Library{Tracks: tracks}
}

// Equal compares two libraries field for field, including order.
func (l Library) Equal(other Library) bool {
	if len(l.Tracks) != len(other.Tracks) {
		return false
	}
	for i := range l.Tracks {
		if l.Tracks[i] != other.Tracks[i] {
			return false
		}
	}
	return true
}
