package runstate

import (
	"log"

	"yt-spotify-sync/internal/models"
)

// CollectTrack stages an accepted track match and records it in the ledger.
// Returns the ledger status.
func (s *State) CollectTrack(rec models.VideoRecord, m *models.TrackMatch, destination string) string {
	uri := m.Track.URI
	status := s.status("Track", rec.Title, uri, destination, s.likedTracks)

	if status == StatusSaved {
		if destination != models.LikedSentinel {
			s.stagePlaylistItem(destination, uri)
		} else {
			s.TracksToLike = append(s.TracksToLike, uri)
		}
	}

	s.mergeTrack(uri, TrackInfo{
		AlbumURI:   m.Track.AlbumURI,
		Title:      m.Track.Title,
		Artists:    joinArtists(m.Track.Artists),
		DurationMS: m.Track.DurationMS,
	})
	s.appendEntry(&s.LogTracks, rec, uri, destination, m.Diag, status)
	return status
}

// CollectAlbum stages an accepted album match: every constituent track goes
// to the destination playlist, or the album itself to the like list.
func (s *State) CollectAlbum(rec models.VideoRecord, m *models.AlbumMatch, destination string) string {
	uri := m.Album.URI
	status := s.status("Album", rec.Title, uri, destination, s.likedAlbums)

	if status == StatusSaved {
		if destination != models.LikedSentinel {
			for _, t := range m.Album.Tracks {
				s.stagePlaylistItem(destination, t.URI)
			}
		} else {
			s.AlbumsToLike = append(s.AlbumsToLike, uri)
		}
	}

	artists := joinArtists(m.Album.Artists)
	s.Albums[uri] = AlbumInfo{
		Title:       m.Album.Title,
		Artists:     artists,
		DurationMS:  m.Album.DurationMS,
		TotalTracks: m.Album.TotalTracks,
	}
	for _, t := range m.Album.Tracks {
		// Album artists stand in for per-track artists; close enough
		// without one extra lookup per track.
		s.mergeTrack(t.URI, TrackInfo{
			AlbumURI:   uri,
			Title:      t.Title,
			Artists:    artists,
			DurationMS: t.DurationMS,
		})
	}
	s.appendEntry(&s.LogAlbums, rec, uri, destination, m.Diag, status)
	return status
}

// CollectPlaylist stages an accepted foreign-playlist match. There is no
// pre-run snapshot of followed playlists, so only the in-run duplicate
// check applies.
func (s *State) CollectPlaylist(rec models.VideoRecord, m *models.PlaylistMatch, destination string) string {
	uri := m.Playlist.URI
	status := s.status("Playlist", rec.Title, uri, destination, nil)

	if status == StatusSaved {
		if destination != models.LikedSentinel {
			for _, t := range m.Playlist.Tracks {
				s.stagePlaylistItem(destination, t.URI)
			}
		} else {
			s.PlaylistsToLike = append(s.PlaylistsToLike, m.Playlist.ID)
		}
	}

	s.PlaylistsOthers[uri] = PlaylistInfo{
		Title:       m.Playlist.Title,
		Owner:       m.Playlist.Owner,
		DurationMS:  m.Playlist.DurationMS,
		TotalTracks: m.Playlist.TotalTracks,
	}
	for _, t := range m.Playlist.Tracks {
		s.mergeTrack(t.URI, TrackInfo{
			AlbumURI:    t.AlbumURI,
			PlaylistURI: uri,
			Title:       t.Title,
			Artists:     joinArtists(t.Artists),
			DurationMS:  t.DurationMS,
		})
	}
	s.appendEntry(&s.LogPlaylists, rec, uri, destination, m.Diag, status)
	return status
}

// status applies the duplicate checks in their fixed order: ledger primary
// key first, then the pre-run liked snapshot (liked destination only).
func (s *State) status(kind, title, uri, destination string, likedBefore map[string]bool) string {
	if s.seen[ledgerKey(uri, destination)] {
		log.Printf("%s %q skipped (saved during the run)", kind, title)
		return StatusSkippedDuringRun
	}
	if destination == models.LikedSentinel && likedBefore[uri] {
		log.Printf("%s %q skipped (saved before the run)", kind, title)
		return StatusSkippedBeforeRun
	}
	return StatusSaved
}

// stagePlaylistItem appends a track URI to a destination playlist's staging
// list, keeping the list free of duplicates.
func (s *State) stagePlaylistItem(destination, uri string) {
	items, ok := s.PlaylistItems[destination]
	if !ok {
		s.PlaylistOrder = append(s.PlaylistOrder, destination)
	}
	for _, existing := range items {
		if existing == uri {
			return
		}
	}
	s.PlaylistItems[destination] = append(items, uri)
}

// mergeTrack updates the distinct-track registry. The first write carrying a
// non-empty owning-playlist reference wins; later writes never clear it.
func (s *State) mergeTrack(uri string, info TrackInfo) {
	if existing, ok := s.Tracks[uri]; ok && existing.PlaylistURI != "" {
		return
	}
	s.Tracks[uri] = info
}

func (s *State) appendEntry(list *[]LedgerEntry, rec models.VideoRecord, uri, destination string, d models.MatchDiag, status string) {
	*list = append(*list, LedgerEntry{
		RecordID:        rec.ID,
		EntityURI:       uri,
		Destination:     destination,
		FoundOnTry:      d.FoundOnTry,
		DifferenceMS:    d.DifferenceMS,
		TracksInDesc:    d.TracksInDesc,
		Query:           d.Query,
		SearchTypeID:    d.SearchTypeID,
		TitleSimilarity: d.TitleSimilarity,
		Status:          status,
	})
	s.seen[ledgerKey(uri, destination)] = true
}
