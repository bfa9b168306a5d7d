package matcher

import (
	"context"
	"errors"
	"testing"

	"yt-spotify-sync/internal/models"
)

// fakeCatalog maps query strings to canned results and records every query
// it sees, so tests can assert strategy order and query construction.
type fakeCatalog struct {
	trackResults    map[string][]models.CandidateTrack
	albumResults    map[string][]models.AlbumRef
	playlistResults map[string][]models.PlaylistRef
	albumDetails    map[string]*models.CandidateAlbum
	playlistDetails map[string]*models.CandidatePlaylist

	queries []string
	limits  []int
	err     error
}

func (f *fakeCatalog) SearchTracks(_ context.Context, query string, limit int) ([]models.CandidateTrack, error) {
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	return f.trackResults[query], f.err
}

func (f *fakeCatalog) SearchAlbums(_ context.Context, query string, limit int) ([]models.AlbumRef, error) {
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	return f.albumResults[query], f.err
}

func (f *fakeCatalog) SearchPlaylists(_ context.Context, query string, limit int) ([]models.PlaylistRef, error) {
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	return f.playlistResults[query], f.err
}

func (f *fakeCatalog) AlbumDetail(_ context.Context, ref models.AlbumRef) (*models.CandidateAlbum, error) {
	detail, ok := f.albumDetails[ref.ID]
	if !ok {
		return nil, errors.New("no detail for " + ref.ID)
	}
	return detail, nil
}

func (f *fakeCatalog) PlaylistDetail(_ context.Context, ref models.PlaylistRef) (*models.CandidatePlaylist, error) {
	detail, ok := f.playlistDetails[ref.ID]
	if !ok {
		return nil, errors.New("no detail for " + ref.ID)
	}
	return detail, nil
}

func TestFindTrackTopicChannelQuery(t *testing.T) {
	rec := models.VideoRecord{
		Title:      "Artist - Song",
		Channel:    "Artist - Topic",
		DurationMS: 180000,
	}
	sp := &fakeCatalog{
		trackResults: map[string][]models.CandidateTrack{
			"track:Artist - Song artist:Artist": {
				{URI: "spotify:track:s1", Title: "Song", Artists: []string{"Artist"}, DurationMS: 182000},
			},
		},
	}

	match, err := FindTrack(context.Background(), sp, rec)
	if err != nil {
		t.Fatal(err)
	}
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Track.URI != "spotify:track:s1" {
		t.Errorf("uri = %s", match.Track.URI)
	}
	if match.Diag.FoundOnTry != 0 || match.Diag.SearchTypeID != SearchTypeColons {
		t.Errorf("diag = %+v, want try 0, search type 0", match.Diag)
	}
	if match.Diag.DifferenceMS != 2000 {
		t.Errorf("difference = %d, want 2000", match.Diag.DifferenceMS)
	}
	if len(sp.queries) != 1 {
		t.Errorf("queries issued = %v, want exactly one", sp.queries)
	}
	if sp.limits[0] != 2 {
		t.Errorf("limit = %d, want 2", sp.limits[0])
	}
}

func TestFindTrackApostropheStripping(t *testing.T) {
	rec := models.VideoRecord{
		Title:   "L'Hymne",
		Channel: "L'Artiste - Topic",
	}
	sp := &fakeCatalog{}

	if _, err := FindTrack(context.Background(), sp, rec); err != nil {
		t.Fatal(err)
	}
	want := "track:L'Hymne artist:L Artiste"
	if sp.queries[0] != want {
		t.Errorf("first query = %q, want %q", sp.queries[0], want)
	}
}

func TestFindTrackCascadeOrder(t *testing.T) {
	rec := models.VideoRecord{
		Title:      "Some Song",
		Channel:    "Some Channel",
		DurationMS: 180000,
	}
	// Nothing matches anywhere: every strategy should run, in order.
	sp := &fakeCatalog{}

	match, err := FindTrack(context.Background(), sp, rec)
	if err != nil {
		t.Fatal(err)
	}
	if match != nil {
		t.Fatal("expected no match")
	}

	want := []string{
		"Some Song",
		`track "Some Song"`,
		"Some Channel Some Song",
	}
	if len(sp.queries) != len(want) {
		t.Fatalf("queries = %v, want %v", sp.queries, want)
	}
	for i := range want {
		if sp.queries[i] != want[i] {
			t.Errorf("query[%d] = %q, want %q", i, sp.queries[i], want[i])
		}
	}
}

func TestFindTrackExaminesSecondCandidate(t *testing.T) {
	rec := models.VideoRecord{
		Title:      "Whatever",
		Channel:    "Channel",
		DurationMS: 180000,
	}
	sp := &fakeCatalog{
		trackResults: map[string][]models.CandidateTrack{
			"Whatever": {
				{URI: "spotify:track:bad", Title: "Unrelated", Artists: []string{"X"}, DurationMS: 500000},
				{URI: "spotify:track:good", Title: "Close", Artists: []string{"Y"}, DurationMS: 181000},
			},
		},
	}

	match, err := FindTrack(context.Background(), sp, rec)
	if err != nil {
		t.Fatal(err)
	}
	if match == nil {
		t.Fatal("expected the second-ranked candidate to be accepted")
	}
	if match.Track.URI != "spotify:track:good" {
		t.Errorf("uri = %s, want the second candidate", match.Track.URI)
	}
	if len(sp.queries) != 1 {
		t.Errorf("cascade should stop after the first strategy, got queries %v", sp.queries)
	}
}

func TestFindTrackLaterStrategyWins(t *testing.T) {
	rec := models.VideoRecord{
		Title:      "Hidden Gem",
		Channel:    "Channel",
		DurationMS: 200000,
	}
	sp := &fakeCatalog{
		trackResults: map[string][]models.CandidateTrack{
			`track "Hidden Gem"`: {
				{URI: "spotify:track:late", Title: "Hidden Gem", Artists: []string{"Z"}, DurationMS: 201000},
			},
		},
	}

	match, err := FindTrack(context.Background(), sp, rec)
	if err != nil {
		t.Fatal(err)
	}
	if match == nil {
		t.Fatal("expected a match from the second strategy")
	}
	if match.Diag.FoundOnTry != 1 {
		t.Errorf("found on try = %d, want 1", match.Diag.FoundOnTry)
	}
	if match.Diag.SearchTypeID != SearchTypeQuoted {
		t.Errorf("search type = %d, want %d", match.Diag.SearchTypeID, SearchTypeQuoted)
	}
	if match.Diag.Query != `track "Hidden Gem"` {
		t.Errorf("query = %q", match.Diag.Query)
	}
}

func TestFindTrackSearchError(t *testing.T) {
	sp := &fakeCatalog{err: errors.New("rate limited")}
	_, err := FindTrack(context.Background(), sp, models.VideoRecord{Title: "T", Channel: "C"})
	if err == nil {
		t.Fatal("search errors must propagate")
	}
}

func TestFindAlbumCascadeQueries(t *testing.T) {
	rec := models.VideoRecord{
		Title:      "Great Album (2021) [Full Album]",
		Channel:    "Channel",
		DurationMS: 3600000,
	}
	sp := &fakeCatalog{}

	match, err := FindAlbum(context.Background(), sp, rec)
	if err != nil {
		t.Fatal(err)
	}
	if match != nil {
		t.Fatal("expected no match")
	}

	want := []string{
		"Great Album  ",
		`album "Great Album  "`,
		"Great Album (2021) [Full Album]",
	}
	for i := range want {
		if sp.queries[i] != want[i] {
			t.Errorf("query[%d] = %q, want %q", i, sp.queries[i], want[i])
		}
	}
	for i, limit := range sp.limits {
		if limit != 1 {
			t.Errorf("album limit[%d] = %d, want 1", i, limit)
		}
	}
}

func TestFindAlbumAcceptsViaDetail(t *testing.T) {
	detail := album(5, 60000)
	rec := models.VideoRecord{
		Title:      "Great Album",
		DurationMS: detail.DurationMS + 20000,
	}
	sp := &fakeCatalog{
		albumResults: map[string][]models.AlbumRef{
			"Great Album": {{URI: "spotify:album:a1", ID: "a1"}},
		},
		albumDetails: map[string]*models.CandidateAlbum{"a1": detail},
	}

	match, err := FindAlbum(context.Background(), sp, rec)
	if err != nil {
		t.Fatal(err)
	}
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Album.URI != "spotify:album:a1" {
		t.Errorf("uri = %s", match.Album.URI)
	}
	if match.Diag.DifferenceMS != 20000 {
		t.Errorf("difference = %d, want 20000", match.Diag.DifferenceMS)
	}
}

func TestFindPlaylistCascadeQueries(t *testing.T) {
	rec := models.VideoRecord{
		Title:      "Mega Mix",
		Channel:    "DJ Channel",
		DurationMS: 3600000,
	}
	sp := &fakeCatalog{}

	match, err := FindPlaylist(context.Background(), sp, rec)
	if err != nil {
		t.Fatal(err)
	}
	if match != nil {
		t.Fatal("expected no match")
	}

	want := []string{
		"Mega Mix",
		`playlist "Mega Mix"`,
		"DJ Channel Mega Mix",
	}
	for i := range want {
		if sp.queries[i] != want[i] {
			t.Errorf("query[%d] = %q, want %q", i, sp.queries[i], want[i])
		}
	}
}
