package matcher

import (
	"context"
	"log"

	"yt-spotify-sync/internal/models"
	"yt-spotify-sync/internal/runstate"
)

// Resolver drives one video record end to end: destination lookup, entity
// kind by duration, cascade, then collection. Records are resolved one at a
// time in input order; the resolver is the only caller of the collector.
type Resolver struct {
	Catalog  Searcher
	State    *runstate.State
	Mappings []models.PlaylistMapping

	// ThresholdMS splits tracks from albums/playlists. Zero means no
	// threshold is configured and every record resolves as a track.
	ThresholdMS int

	// NotFound counts records whose cascades were exhausted.
	NotFound int
}

// Resolve processes a single record. A "not found" outcome is normal and
// only logged; errors from the catalog abort the run.
func (r *Resolver) Resolve(ctx context.Context, rec models.VideoRecord) error {
	destination, ok := r.destination(rec)
	if !ok {
		return nil
	}

	if r.ThresholdMS > 0 && rec.DurationMS >= r.ThresholdMS {
		album, err := FindAlbum(ctx, r.Catalog, rec)
		if err != nil {
			return err
		}
		if album != nil {
			r.State.CollectAlbum(rec, album, destination)
			return nil
		}

		playlist, err := FindPlaylist(ctx, r.Catalog, rec)
		if err != nil {
			return err
		}
		if playlist == nil {
			log.Printf("Album/Playlist %q not found on Spotify", rec.Title)
			r.NotFound++
			return nil
		}
		r.State.CollectPlaylist(rec, playlist, destination)
		return nil
	}

	track, err := FindTrack(ctx, r.Catalog, rec)
	if err != nil {
		return err
	}
	if track == nil {
		log.Printf("Track %q not found on Spotify", rec.Title)
		r.NotFound++
		return nil
	}
	r.State.CollectTrack(rec, track, destination)
	return nil
}

// destination resolves the record's YouTube playlist to the Spotify
// destination. No mapping skips the record with a warning; an ambiguous
// mapping proceeds with the first row and warns.
func (r *Resolver) destination(rec models.VideoRecord) (string, bool) {
	var matches []models.PlaylistMapping
	for _, m := range r.Mappings {
		if m.YoutubeID == rec.PlaylistID {
			matches = append(matches, m)
		}
	}

	switch {
	case len(matches) == 0:
		log.Printf("record %d: no playlist mapping for %q, skipping", rec.ID, rec.PlaylistID)
		return "", false
	case len(matches) > 1:
		log.Printf("record %d: %d playlist mappings for %q, using the first", rec.ID, len(matches), rec.PlaylistID)
	}
	return matches[0].SpotifyID, true
}
