package catalog

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// batchSize is the Web API maximum for like and playlist-append calls.
const batchSize = 50

// LikedTrackURIs pages through the user's saved tracks once, at run start.
// The snapshot keeps reruns from overwriting the original added-at
// timestamps with fresh likes.
func (c *Client) LikedTrackURIs(ctx context.Context) (map[string]bool, error) {
	liked := make(map[string]bool)

	page, err := c.sp.CurrentUsersTracks(ctx, spotify.Limit(batchSize))
	if err != nil {
		return nil, fmt.Errorf("liked tracks: %w", err)
	}
	for {
		for _, t := range page.Tracks {
			liked[string(t.URI)] = true
		}

		err = c.sp.NextPage(ctx, page)
		if err == spotify.ErrNoMorePages {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("liked tracks pagination: %w", err)
		}
	}
	return liked, nil
}

// LikedAlbumURIs pages through the user's saved albums once, at run start.
func (c *Client) LikedAlbumURIs(ctx context.Context) (map[string]bool, error) {
	liked := make(map[string]bool)

	page, err := c.sp.CurrentUsersAlbums(ctx, spotify.Limit(batchSize))
	if err != nil {
		return nil, fmt.Errorf("liked albums: %w", err)
	}
	for {
		for _, a := range page.Albums {
			liked[string(a.URI)] = true
		}

		err = c.sp.NextPage(ctx, page)
		if err == spotify.ErrNoMorePages {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("liked albums pagination: %w", err)
		}
	}
	return liked, nil
}

// LikeTracks saves tracks to the user's library, 50 per call. A failed
// batch aborts the remaining ones.
func (c *Client) LikeTracks(ctx context.Context, uris []string) error {
	for _, chunk := range chunkIDs(uris) {
		if err := c.sp.AddTracksToLibrary(ctx, chunk...); err != nil {
			return fmt.Errorf("like tracks: %w", err)
		}
	}
	return nil
}

// LikeAlbums saves albums to the user's library, 50 per call.
func (c *Client) LikeAlbums(ctx context.Context, uris []string) error {
	for _, chunk := range chunkIDs(uris) {
		if err := c.sp.AddAlbumsToLibrary(ctx, chunk...); err != nil {
			return fmt.Errorf("like albums: %w", err)
		}
	}
	return nil
}

// FollowPlaylists follows foreign playlists, one per call as the API
// requires. Followed playlists stay private.
func (c *Client) FollowPlaylists(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := c.sp.FollowPlaylist(ctx, spotify.ID(id), false); err != nil {
			return fmt.Errorf("follow playlist %s: %w", id, err)
		}
	}
	return nil
}

// AddPlaylistItems appends track URIs to a user playlist, 50 per call, in
// staging order.
func (c *Client) AddPlaylistItems(ctx context.Context, playlistID string, uris []string) error {
	for _, chunk := range chunkIDs(uris) {
		if _, err := c.sp.AddTracksToPlaylist(ctx, spotify.ID(playlistID), chunk...); err != nil {
			return fmt.Errorf("add to playlist %s: %w", playlistID, err)
		}
	}
	return nil
}

// CreatePlaylist creates a private, non-collaborative playlist for the
// current user and returns its id.
func (c *Client) CreatePlaylist(ctx context.Context, name string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	playlist, err := c.sp.CreatePlaylistForUser(ctx, c.userID, name, "", false, false)
	if err != nil {
		return "", fmt.Errorf("create playlist %q: %w", name, err)
	}
	return string(playlist.ID), nil
}

func chunkIDs(uris []string) [][]spotify.ID {
	ids := make([]spotify.ID, len(uris))
	for i, uri := range uris {
		ids[i] = idFromURI(uri)
	}

	var chunks [][]spotify.ID
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
