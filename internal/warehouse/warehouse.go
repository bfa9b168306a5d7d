// Package warehouse reads the extracted YouTube marts from sqlite and
// writes the run's result tables back.
package warehouse

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"yt-spotify-sync/internal/matcher"
	"yt-spotify-sync/internal/models"
	"yt-spotify-sync/internal/runstate"
)

//go:embed schema.sql
var schema string

// Open connects to the sqlite warehouse, sets the performance PRAGMAs and
// ensures the result tables exist.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL; PRAGMA cache_size=-2000;"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}

// Playlists extracts the YouTube playlist mapping, ordered by name for
// reproducible runs.
func Playlists(db *sql.DB) ([]models.PlaylistMapping, error) {
	rows, err := db.Query(`
		SELECT youtube_playlist_id, playlist_name
		FROM youtube_playlists
		ORDER BY playlist_name`)
	if err != nil {
		return nil, fmt.Errorf("query playlists: %w", err)
	}
	defer rows.Close()

	var mappings []models.PlaylistMapping
	for rows.Next() {
		var m models.PlaylistMapping
		if err := rows.Scan(&m.YoutubeID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// Videos extracts the video library joined with per-video metadata, in
// stable library order. Descriptions come back lowercased, ready for the
// scorer's substring checks.
func Videos(db *sql.DB) ([]models.VideoRecord, error) {
	rows, err := db.Query(`
		SELECT yl.id, yl.video_id, yl.youtube_playlist_id,
		       yv.youtube_title, yv.youtube_channel, lower(yv.description), yv.duration_ms
		FROM youtube_library yl
		INNER JOIN youtube_videos yv ON yl.video_id = yv.video_id
		ORDER BY yl.id`)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var records []models.VideoRecord
	for rows.Next() {
		var r models.VideoRecord
		if err := rows.Scan(&r.ID, &r.VideoID, &r.PlaylistID,
			&r.Title, &r.Channel, &r.Description, &r.DurationMS); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// WritePlaylistTables uploads the created-playlist mapping before the
// resolve phase starts.
func WritePlaylistTables(db *sql.DB, mappings []models.PlaylistMapping) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM spotify_playlists; DELETE FROM playlist_ids;`); err != nil {
		return err
	}
	for i, m := range mappings {
		if _, err := tx.Exec(
			`INSERT INTO spotify_playlists (spotify_playlist_id, playlist_name) VALUES (?, ?)`,
			m.SpotifyID, m.Name); err != nil {
			return fmt.Errorf("insert spotify_playlists: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO playlist_ids (id, youtube_playlist_id, spotify_playlist_id) VALUES (?, ?, ?)`,
			i, m.YoutubeID, m.SpotifyID); err != nil {
			return fmt.Errorf("insert playlist_ids: %w", err)
		}
	}
	return tx.Commit()
}

// WriteResults uploads the registries, the ledger and the search-type
// lookup in one transaction after the resolve phase.
func WriteResults(db *sql.DB, st *runstate.State) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM spotify_albums;
		DELETE FROM spotify_playlists_others;
		DELETE FROM spotify_tracks;
		DELETE FROM spotify_log;
		DELETE FROM search_types;`); err != nil {
		return err
	}

	for uri, a := range st.Albums {
		if _, err := tx.Exec(
			`INSERT INTO spotify_albums (album_uri, album_title, album_artists, duration_ms, total_tracks)
			 VALUES (?, ?, ?, ?, ?)`,
			uri, a.Title, a.Artists, a.DurationMS, a.TotalTracks); err != nil {
			return fmt.Errorf("insert spotify_albums: %w", err)
		}
	}

	for uri, p := range st.PlaylistsOthers {
		if _, err := tx.Exec(
			`INSERT INTO spotify_playlists_others (playlist_uri, playlist_title, playlist_owner, duration_ms, total_tracks)
			 VALUES (?, ?, ?, ?, ?)`,
			uri, p.Title, p.Owner, p.DurationMS, p.TotalTracks); err != nil {
			return fmt.Errorf("insert spotify_playlists_others: %w", err)
		}
	}

	for uri, t := range st.Tracks {
		if _, err := tx.Exec(
			`INSERT INTO spotify_tracks (track_uri, album_uri, playlist_uri, track_title, track_artists, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			uri, nullable(t.AlbumURI), nullable(t.PlaylistURI), t.Title, t.Artists, t.DurationMS); err != nil {
			return fmt.Errorf("insert spotify_tracks: %w", err)
		}
	}

	if err := writeLog(tx, st.LogAlbums, "album_uri"); err != nil {
		return err
	}
	if err := writeLog(tx, st.LogPlaylists, "playlist_uri"); err != nil {
		return err
	}
	if err := writeLog(tx, st.LogTracks, "track_uri"); err != nil {
		return err
	}

	for id := 0; id < len(matcher.SearchTypeNames); id++ {
		if _, err := tx.Exec(
			`INSERT INTO search_types (search_type_id, search_type_name) VALUES (?, ?)`,
			id, matcher.SearchTypeNames[id]); err != nil {
			return fmt.Errorf("insert search_types: %w", err)
		}
	}

	return tx.Commit()
}

// writeLog inserts one ledger slice with its entity URI in the column for
// its kind; the other two URI columns stay NULL.
func writeLog(tx *sql.Tx, entries []runstate.LedgerEntry, uriColumn string) error {
	stmt := fmt.Sprintf(`
		INSERT INTO spotify_log (log_id, %s, destination, found_on_try, difference_ms,
		                         tracks_in_desc, title_similarity, q, search_type_id, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, uriColumn)

	for _, e := range entries {
		if _, err := tx.Exec(stmt,
			e.RecordID, e.EntityURI, e.Destination, e.FoundOnTry, e.DifferenceMS,
			e.TracksInDesc, e.TitleSimilarity, e.Query, e.SearchTypeID, e.Status); err != nil {
			return fmt.Errorf("insert spotify_log: %w", err)
		}
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
