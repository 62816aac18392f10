package spotify

import "github.com/ewhitmore/trackbox/internal/core/domain"

// mapMetadata converts the first search match into the merge set: the first
// album image, the primary artist, and the album name.
func mapMetadata(st spotifyTrack) domain.TrackMetadata {
	meta := domain.TrackMetadata{
		Album: st.Album.Name,
	}
	if len(st.Album.Images) > 0 {
		meta.CoverURL = st.Album.Images[0].URL
	}
	if len(st.Artists) > 0 {
		meta.Artist = st.Artists[0].Name
	}
	return meta
}
