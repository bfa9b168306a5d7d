package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"yt-spotify-sync/internal/backfill"
	"yt-spotify-sync/internal/catalog"
	"yt-spotify-sync/internal/matcher"
	"yt-spotify-sync/internal/models"
	"yt-spotify-sync/internal/report"
	"yt-spotify-sync/internal/runstate"
	"yt-spotify-sync/internal/warehouse"
)

func main() {
	begin := time.Now()
	_ = godotenv.Load()

	// 1. Validate environment (fail fast)
	cfg := catalog.Config{
		ClientID:     os.Getenv("SPOTIFY_ID"),
		ClientSecret: os.Getenv("SPOTIFY_SECRET"),
		RefreshToken: os.Getenv("SPOTIFY_REFRESH_TOKEN"),
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		log.Fatal("CRITICAL: SPOTIFY_ID, SPOTIFY_SECRET and SPOTIFY_REFRESH_TOKEN must be set in environment")
	}

	warehousePath := os.Getenv("WAREHOUSE_PATH")
	if warehousePath == "" {
		warehousePath = "./data/warehouse.db"
	}

	thresholdMS := 0
	if v := os.Getenv("THRESHOLD_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid THRESHOLD_MS %q: %v", v, err)
		}
		thresholdMS = n
	}

	// 2. Extract datasets from the warehouse
	db, err := warehouse.Open(warehousePath)
	if err != nil {
		log.Fatalf("Failed to open warehouse: %v", err)
	}
	defer db.Close()

	mappings, err := warehouse.Playlists(db)
	if err != nil {
		log.Fatalf("Failed to extract playlists: %v", err)
	}
	videos, err := warehouse.Videos(db)
	if err != nil {
		log.Fatalf("Failed to extract videos: %v", err)
	}
	log.Printf("Datasets extracted: %d playlists, %d videos", len(mappings), len(videos))

	ctx := context.Background()

	// 3. Backfill missing durations/descriptions from YouTube
	if os.Getenv("BACKFILL") != "0" {
		backfill.New().Fill(ctx, videos)
	}

	// 4. Authorize and snapshot the library state before any mutation
	client, err := catalog.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Spotify auth failed: %v", err)
	}

	likedTracks, err := client.LikedTrackURIs(ctx)
	if err != nil {
		log.Fatalf("Failed to snapshot liked tracks: %v", err)
	}
	likedAlbums, err := client.LikedAlbumURIs(ctx)
	if err != nil {
		log.Fatalf("Failed to snapshot liked albums: %v", err)
	}
	log.Printf("Liked snapshot: %d tracks, %d albums", len(likedTracks), len(likedAlbums))

	// 5. Create one private playlist per mapped YouTube playlist. Ids, not
	// names, key the staging maps: duplicate names would merge playlists.
	created := 0
	for i := range mappings {
		if mappings[i].YoutubeID == models.LikedSentinel {
			mappings[i].SpotifyID = models.LikedSentinel
			continue
		}
		id, err := client.CreatePlaylist(ctx, mappings[i].Name)
		if err != nil {
			log.Fatalf("Failed to create playlist %q: %v", mappings[i].Name, err)
		}
		mappings[i].SpotifyID = id
		created++
	}
	log.Printf("%d playlists created", created)

	if err := warehouse.WritePlaylistTables(db, mappings); err != nil {
		log.Fatalf("Failed to upload playlist tables: %v", err)
	}

	// 6. Resolve every record sequentially
	state := runstate.New(likedTracks, likedAlbums)
	resolver := &matcher.Resolver{
		Catalog:     client,
		State:       state,
		Mappings:    mappings,
		ThresholdMS: thresholdMS,
	}
	for _, rec := range videos {
		if err := resolver.Resolve(ctx, rec); err != nil {
			log.Fatalf("record %d: %v", rec.ID, err)
		}
	}

	// 7. Flush the deferred side effects in batches
	if err := flush(ctx, client, state); err != nil {
		log.Fatalf("Flush failed: %v", err)
	}

	// 8. Upload results
	if err := warehouse.WriteResults(db, state); err != nil {
		log.Fatalf("Failed to upload results: %v", err)
	}

	fmt.Println(report.Summary(state, resolver.NotFound, time.Since(begin)))
}

// flush executes the staged likes and playlist appends. Order matches the
// staging semantics: albums, playlist follows, tracks, then playlist items.
func flush(ctx context.Context, client *catalog.Client, st *runstate.State) error {
	if len(st.AlbumsToLike) > 0 {
		if err := client.LikeAlbums(ctx, st.AlbumsToLike); err != nil {
			return err
		}
		log.Printf("%d albums have been liked", len(st.AlbumsToLike))
	}

	if len(st.PlaylistsToLike) > 0 {
		if err := client.FollowPlaylists(ctx, st.PlaylistsToLike); err != nil {
			return err
		}
		log.Printf("%d playlists have been followed", len(st.PlaylistsToLike))
	}

	if len(st.TracksToLike) > 0 {
		if err := client.LikeTracks(ctx, st.TracksToLike); err != nil {
			return err
		}
		log.Printf("%d tracks have been liked", len(st.TracksToLike))
	}

	for _, destination := range st.PlaylistOrder {
		uris := st.PlaylistItems[destination]
		if err := client.AddPlaylistItems(ctx, destination, uris); err != nil {
			return err
		}
		log.Printf("Playlist %s has been filled with %d tracks", destination, len(uris))
	}
	return nil
}
