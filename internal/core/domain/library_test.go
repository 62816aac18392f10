package domain

import "testing"

func TestTrackMerge(t *testing.T) {
	tr := Track{ID: "a", Filename: "a.mp3", URI: "file:///music/a.mp3"}

	tr.Merge(TrackMetadata{CoverURL: "http://img.test/a.jpg", Artist: "Artist", Album: "Album"})

	if tr.CoverURL != "http://img.test/a.jpg" || tr.Artist != "Artist" || tr.Album != "Album" {
		t.Errorf("merge did not copy metadata: %+v", tr)
	}
	if !tr.Enriched {
		t.Error("merge should mark the track enriched")
	}
	if tr.ID != "a" || tr.Filename != "a.mp3" || tr.URI != "file:///music/a.mp3" {
		t.Errorf("merge must not touch scan fields: %+v", tr)
	}
}

func TestLibraryEqual(t *testing.T) {
	a := Library{Tracks: []Track{
		{ID: "1", Filename: "one.mp3", URI: "file:///one.mp3", Artist: "X", Enriched: true},
		{ID: "2", Filename: "two.mp3", URI: "file:///two.mp3"},
	}}

	if !a.Equal(a.Clone()) {
		t.Error("a library must equal its clone")
	}

	reordered := Library{Tracks: []Track{a.Tracks[1], a.Tracks[0]}}
	if a.Equal(reordered) {
		t.Error("order matters for equality")
	}

	shorter := Library{Tracks: a.Tracks[:1]}
	if a.Equal(shorter) {
		t.Error("length matters for equality")
	}
}

func TestLibraryCloneIsIndependent(t *testing.T) {
	a := Library{Tracks: []Track{{ID: "1", Filename: "one.mp3", URI: "file:///one.mp3"}}}

	b := a.Clone()
	b.Tracks[0].Artist = "mutated"

	if a.Tracks[0].Artist != "" {
		t.Error("mutating a clone must not touch the original")
	}
}
