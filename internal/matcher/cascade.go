package matcher

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"yt-spotify-sync/internal/models"
)

// TopicMarker tags auto-generated artist channels on YouTube.
const TopicMarker = " - Topic"

// Search type ids stored with every ledger entry. The search_types output
// table maps them back to names for analysis.
const (
	SearchTypeColons       = 0
	SearchTypeTitleOnly    = 1
	SearchTypeQuoted       = 2
	SearchTypeChannelTitle = 3
)

// SearchTypeNames is the static lookup table written to the warehouse.
var SearchTypeNames = map[int]string{
	SearchTypeColons:       "colons",
	SearchTypeTitleOnly:    "title only",
	SearchTypeQuoted:       "keyword and quotes",
	SearchTypeChannelTitle: "channel name and title",
}

// Searcher is the slice of the catalog client the cascades need. Tests
// inject fakes.
type Searcher interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]models.CandidateTrack, error)
	SearchAlbums(ctx context.Context, query string, limit int) ([]models.AlbumRef, error)
	SearchPlaylists(ctx context.Context, query string, limit int) ([]models.PlaylistRef, error)
	AlbumDetail(ctx context.Context, ref models.AlbumRef) (*models.CandidateAlbum, error)
	PlaylistDetail(ctx context.Context, ref models.PlaylistRef) (*models.CandidatePlaylist, error)
}

// Strategy is one query-construction method in a cascade, tried in order
// until a candidate is accepted.
type Strategy struct {
	SearchTypeID int
	Limit        int
	Query        func(models.VideoRecord) string
}

// runCascade interprets a strategy table. examine issues exactly one search
// for the given query and reports whether it accepted a candidate; the first
// acceptance stops the cascade. Exhausting every strategy is a normal
// outcome, not an error.
func runCascade(ctx context.Context, rec models.VideoRecord, strategies []Strategy,
	examine func(ctx context.Context, query string, try int, s Strategy) (bool, error)) (bool, error) {
	for try, s := range strategies {
		query := s.Query(rec)
		accepted, err := examine(ctx, query, try, s)
		if err != nil {
			return false, err
		}
		if accepted {
			return true, nil
		}
	}
	return false, nil
}

// channelArtist turns a channel name into an artist search term by stripping
// the topic marker. Apostrophes break the fielded query syntax, so they
// become spaces there.
func channelArtist(channel string, stripApostrophes bool) string {
	artist := strings.ReplaceAll(channel, TopicMarker, "")
	if stripApostrophes {
		artist = strings.ReplaceAll(artist, "'", " ")
	}
	return artist
}

func trackStrategies(rec models.VideoRecord) []Strategy {
	first := Strategy{
		SearchTypeID: SearchTypeTitleOnly,
		Limit:        2,
		Query:        func(r models.VideoRecord) string { return r.Title },
	}
	if strings.Contains(rec.Channel, TopicMarker) {
		first = Strategy{
			SearchTypeID: SearchTypeColons,
			Limit:        2,
			Query: func(r models.VideoRecord) string {
				return fmt.Sprintf("track:%s artist:%s", r.Title, channelArtist(r.Channel, true))
			},
		}
	}
	return []Strategy{
		first,
		{SearchTypeQuoted, 2, func(r models.VideoRecord) string { return `track "` + r.Title + `"` }},
		{SearchTypeChannelTitle, 2, func(r models.VideoRecord) string {
			return channelArtist(r.Channel, false) + " " + r.Title
		}},
	}
}

func albumStrategies() []Strategy {
	return []Strategy{
		{SearchTypeTitleOnly, 1, func(r models.VideoRecord) string { return NormalizeTitle(r.Title) }},
		{SearchTypeQuoted, 1, func(r models.VideoRecord) string { return `album "` + NormalizeTitle(r.Title) + `"` }},
		{SearchTypeTitleOnly, 1, func(r models.VideoRecord) string { return r.Title }},
	}
}

func playlistStrategies() []Strategy {
	return []Strategy{
		{SearchTypeTitleOnly, 2, func(r models.VideoRecord) string { return r.Title }},
		{SearchTypeQuoted, 2, func(r models.VideoRecord) string { return `playlist "` + r.Title + `"` }},
		{SearchTypeChannelTitle, 2, func(r models.VideoRecord) string { return r.Channel + " " + r.Title }},
	}
}

// FindTrack runs the track cascade. A nil match with a nil error means the
// cascade was exhausted without an acceptable candidate.
func FindTrack(ctx context.Context, sp Searcher, rec models.VideoRecord) (*models.TrackMatch, error) {
	var match *models.TrackMatch
	_, err := runCascade(ctx, rec, trackStrategies(rec),
		func(ctx context.Context, query string, try int, s Strategy) (bool, error) {
			candidates, err := sp.SearchTracks(ctx, query, s.Limit)
			if err != nil {
				return false, fmt.Errorf("search tracks: %w", err)
			}
			for _, c := range candidates {
				score := ScoreTrack(rec, c)
				if !score.Accepted {
					continue
				}
				log.Printf("Track %q found on try %d, difference: %d seconds",
					rec.Title, try, score.DifferenceMS/1000)
				match = &models.TrackMatch{Track: c, Diag: diag(try, s, query, score, c.Title)}
				return true, nil
			}
			return false, nil
		})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// FindAlbum runs the album cascade. Each ranked search result costs one
// detail fetch before it can be scored.
func FindAlbum(ctx context.Context, sp Searcher, rec models.VideoRecord) (*models.AlbumMatch, error) {
	var match *models.AlbumMatch
	_, err := runCascade(ctx, rec, albumStrategies(),
		func(ctx context.Context, query string, try int, s Strategy) (bool, error) {
			refs, err := sp.SearchAlbums(ctx, query, s.Limit)
			if err != nil {
				return false, fmt.Errorf("search albums: %w", err)
			}
			for _, ref := range refs {
				album, err := sp.AlbumDetail(ctx, ref)
				if err != nil {
					return false, fmt.Errorf("album detail: %w", err)
				}
				score := ScoreAlbum(rec, album)
				if !score.Accepted {
					continue
				}
				logGroupMatch("Album", rec.Title, try, score, album.TotalTracks)
				match = &models.AlbumMatch{Album: *album, Diag: diag(try, s, query, score, album.Title)}
				return true, nil
			}
			return false, nil
		})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// FindPlaylist runs the playlist cascade, attempted only after the album
// cascade came up empty.
func FindPlaylist(ctx context.Context, sp Searcher, rec models.VideoRecord) (*models.PlaylistMatch, error) {
	var match *models.PlaylistMatch
	_, err := runCascade(ctx, rec, playlistStrategies(),
		func(ctx context.Context, query string, try int, s Strategy) (bool, error) {
			refs, err := sp.SearchPlaylists(ctx, query, s.Limit)
			if err != nil {
				return false, fmt.Errorf("search playlists: %w", err)
			}
			for _, ref := range refs {
				playlist, err := sp.PlaylistDetail(ctx, ref)
				if err != nil {
					return false, fmt.Errorf("playlist detail: %w", err)
				}
				score := ScorePlaylist(rec, playlist)
				if !score.Accepted {
					continue
				}
				logGroupMatch("Playlist", rec.Title, try, score, playlist.TotalTracks)
				match = &models.PlaylistMatch{Playlist: *playlist, Diag: diag(try, s, query, score, playlist.Title)}
				return true, nil
			}
			return false, nil
		})
	if err != nil {
		return nil, err
	}
	return match, nil
}

func logGroupMatch(kind, title string, try int, score Score, total int) {
	percent := 0.0
	if total > 0 {
		percent = float64(score.TracksInDesc) / float64(total) * 100
	}
	log.Printf("%s %q found on try %d, difference: %d seconds, %d of %d track titles (%.0f%%) found in the video description",
		kind, title, try, score.DifferenceMS/1000, score.TracksInDesc, total, percent)
}

func diag(try int, s Strategy, query string, score Score, matchedTitle string) models.MatchDiag {
	return models.MatchDiag{
		FoundOnTry:   try,
		DifferenceMS: score.DifferenceMS,
		TracksInDesc: score.TracksInDesc,
		Query:        query,
		SearchTypeID: s.SearchTypeID,
		TitleSimilarity: strutil.Similarity(
			strings.ToLower(query), strings.ToLower(matchedTitle), metrics.NewJaroWinkler()),
	}
}
