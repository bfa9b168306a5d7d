// Package runstate holds everything a single sync run accumulates: the
// distinct-entity registries, the staging lists for the deferred like/add
// side effects, and the append-only ledger of every match. The collector
// methods in collector.go are the only writers.
package runstate

import "strings"

// Ledger statuses.
const (
	StatusSaved            = "saved"
	StatusSkippedDuringRun = "skipped (saved during the run)"
	StatusSkippedBeforeRun = "skipped (saved before the run)"
)

// TrackInfo is the registry row for one distinct track.
type TrackInfo struct {
	AlbumURI    string
	PlaylistURI string // owning playlist, "" until a playlist match sets it
	Title       string
	Artists     string
	DurationMS  int
}

// AlbumInfo is the registry row for one distinct album.
type AlbumInfo struct {
	Title       string
	Artists     string
	DurationMS  int
	TotalTracks int
}

// PlaylistInfo is the registry row for one distinct foreign playlist.
type PlaylistInfo struct {
	Title       string
	Owner       string
	DurationMS  int
	TotalTracks int
}

// LedgerEntry is one append-only audit row. (EntityURI, Destination) is the
// primary key used for duplicate detection.
type LedgerEntry struct {
	RecordID        int64
	EntityURI       string
	Destination     string
	FoundOnTry      int
	DifferenceMS    int
	TracksInDesc    int
	Query           string
	SearchTypeID    int
	TitleSimilarity float64
	Status          string
}

// State is the per-run mutable store. Created empty, populated during the
// resolve phase, consumed once at the end of the run.
type State struct {
	Albums          map[string]AlbumInfo
	PlaylistsOthers map[string]PlaylistInfo
	Tracks          map[string]TrackInfo

	AlbumsToLike    []string
	PlaylistsToLike []string // playlist ids, followed one per call
	TracksToLike    []string
	PlaylistItems   map[string][]string // destination playlist id -> track URIs
	PlaylistOrder   []string            // insertion order of PlaylistItems keys

	// The ledger is split per entity kind so duplicate lookups and the
	// warehouse upload stay straightforward.
	LogAlbums    []LedgerEntry
	LogPlaylists []LedgerEntry
	LogTracks    []LedgerEntry

	likedTracks map[string]bool
	likedAlbums map[string]bool
	seen        map[string]bool
}

// New creates an empty run state over the pre-run liked snapshots.
func New(likedTracks, likedAlbums map[string]bool) *State {
	if likedTracks == nil {
		likedTracks = map[string]bool{}
	}
	if likedAlbums == nil {
		likedAlbums = map[string]bool{}
	}
	return &State{
		Albums:          make(map[string]AlbumInfo),
		PlaylistsOthers: make(map[string]PlaylistInfo),
		Tracks:          make(map[string]TrackInfo),
		PlaylistItems:   make(map[string][]string),
		likedTracks:     likedTracks,
		likedAlbums:     likedAlbums,
		seen:            make(map[string]bool),
	}
}

// LedgerLen reports the total number of ledger entries.
func (s *State) LedgerLen() int {
	return len(s.LogAlbums) + len(s.LogPlaylists) + len(s.LogTracks)
}

// StagedItems reports how many playlist-append URIs are staged in total.
func (s *State) StagedItems() int {
	n := 0
	for _, uris := range s.PlaylistItems {
		n += len(uris)
	}
	return n
}

func joinArtists(artists []string) string {
	return strings.Join(artists, "; ")
}

func ledgerKey(uri, destination string) string {
	return uri + "\x1f" + destination
}
