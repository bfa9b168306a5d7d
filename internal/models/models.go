package models

// LikedSentinel is the destination value meaning "user's liked library"
// rather than any concrete playlist.
const LikedSentinel = "0"

// VideoRecord is one row of the extracted YouTube library. Description is
// already lowercased by the warehouse query.
type VideoRecord struct {
	ID          int64
	VideoID     string
	PlaylistID  string // YouTube playlist id, "0" = none (goes to liked)
	Title       string
	Channel     string
	Description string
	DurationMS  int
}

// PlaylistMapping joins a YouTube playlist to the Spotify playlist created
// for it. SpotifyID is filled in after playlist creation; the row with
// YoutubeID == LikedSentinel keeps SpotifyID == LikedSentinel.
type PlaylistMapping struct {
	YoutubeID string
	Name      string
	SpotifyID string
}

// CandidateTrack is one track returned by a catalog search, already carrying
// everything the scorer needs.
type CandidateTrack struct {
	URI        string
	AlbumURI   string
	Title      string
	Artists    []string
	DurationMS int
}

// AlbumRef is a ranked album search result before the tracklist is fetched.
type AlbumRef struct {
	URI string
	ID  string
}

// AlbumTrack is one entry of a fetched album tracklist.
type AlbumTrack struct {
	URI        string
	Title      string
	DurationMS int
}

// CandidateAlbum is a fully fetched album candidate. DurationMS is the sum
// of its track durations.
type CandidateAlbum struct {
	URI         string
	Title       string
	Artists     []string
	DurationMS  int
	TotalTracks int
	Tracks      []AlbumTrack
}

// PlaylistRef is a ranked playlist search result before the tracklist is
// fetched.
type PlaylistRef struct {
	URI string
	ID  string
}

// PlaylistTrack is one still-available entry of a fetched playlist.
// Deleted and local entries are dropped by the catalog layer.
type PlaylistTrack struct {
	URI        string
	Title      string
	Artists    []string
	DurationMS int
	AlbumURI   string
}

// CandidatePlaylist is a fully fetched playlist candidate. DurationMS and
// TotalTracks cover only the still-available tracks.
type CandidatePlaylist struct {
	URI         string
	ID          string
	Title       string
	Owner       string
	DurationMS  int
	TotalTracks int
	Tracks      []PlaylistTrack
}

// MatchDiag records how a match was found, for the run ledger and for
// post-hoc analysis of which query strategies work.
type MatchDiag struct {
	FoundOnTry      int // index of the query strategy that succeeded
	DifferenceMS    int
	TracksInDesc    int
	Query           string
	SearchTypeID    int
	TitleSimilarity float64
}

// TrackMatch is an accepted track candidate plus its diagnostics.
type TrackMatch struct {
	Track CandidateTrack
	Diag  MatchDiag
}

// AlbumMatch is an accepted album candidate plus its diagnostics.
type AlbumMatch struct {
	Album CandidateAlbum
	Diag  MatchDiag
}

// PlaylistMatch is an accepted playlist candidate plus its diagnostics.
type PlaylistMatch struct {
	Playlist CandidatePlaylist
	Diag     MatchDiag
}
