package catalog

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"yt-spotify-sync/internal/models"
)

// SearchTracks returns up to limit ranked track candidates, hydrated enough
// for scoring without further lookups.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]models.CandidateTrack, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := c.sp.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("search tracks %q: %w", query, err)
	}
	if res.Tracks == nil {
		return nil, nil
	}

	out := make([]models.CandidateTrack, 0, len(res.Tracks.Tracks))
	for _, t := range res.Tracks.Tracks {
		out = append(out, models.CandidateTrack{
			URI:        string(t.URI),
			AlbumURI:   string(t.Album.URI),
			Title:      t.Name,
			Artists:    artistNames(t.Artists),
			DurationMS: int(t.Duration),
		})
	}
	return out, nil
}

// SearchAlbums returns ranked album references; the tracklist comes from
// AlbumDetail.
func (c *Client) SearchAlbums(ctx context.Context, query string, limit int) ([]models.AlbumRef, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := c.sp.Search(ctx, query, spotify.SearchTypeAlbum, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("search albums %q: %w", query, err)
	}
	if res.Albums == nil {
		return nil, nil
	}

	out := make([]models.AlbumRef, 0, len(res.Albums.Albums))
	for _, a := range res.Albums.Albums {
		if a.ID == "" {
			continue
		}
		out = append(out, models.AlbumRef{URI: string(a.URI), ID: string(a.ID)})
	}
	return out, nil
}

// SearchPlaylists returns ranked playlist references. The API occasionally
// pads results with empty items; those are dropped.
func (c *Client) SearchPlaylists(ctx context.Context, query string, limit int) ([]models.PlaylistRef, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := c.sp.Search(ctx, query, spotify.SearchTypePlaylist, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("search playlists %q: %w", query, err)
	}
	if res.Playlists == nil {
		return nil, nil
	}

	out := make([]models.PlaylistRef, 0, len(res.Playlists.Playlists))
	for _, p := range res.Playlists.Playlists {
		if p.ID == "" {
			continue
		}
		out = append(out, models.PlaylistRef{URI: string(p.URI), ID: string(p.ID)})
	}
	return out, nil
}

// AlbumDetail fetches the full tracklist for one album search result.
func (c *Client) AlbumDetail(ctx context.Context, ref models.AlbumRef) (*models.CandidateAlbum, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	full, err := c.sp.GetAlbum(ctx, spotify.ID(ref.ID))
	if err != nil {
		return nil, fmt.Errorf("get album %s: %w", ref.ID, err)
	}

	album := &models.CandidateAlbum{
		URI:     string(full.URI),
		Title:   full.Name,
		Artists: artistNames(full.Artists),
	}

	page := full.Tracks
	for {
		for _, t := range page.Tracks {
			album.Tracks = append(album.Tracks, models.AlbumTrack{
				URI:        string(t.URI),
				Title:      t.Name,
				DurationMS: int(t.Duration),
			})
			album.DurationMS += int(t.Duration)
		}

		err = c.sp.NextPage(ctx, &page)
		if err == spotify.ErrNoMorePages {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("album %s pagination: %w", ref.ID, err)
		}
	}

	album.TotalTracks = len(album.Tracks)
	return album, nil
}

// PlaylistDetail fetches the full tracklist for one playlist search result.
// Deleted and local entries are dropped here so scoring only ever sees
// still-available tracks.
func (c *Client) PlaylistDetail(ctx context.Context, ref models.PlaylistRef) (*models.CandidatePlaylist, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	full, err := c.sp.GetPlaylist(ctx, spotify.ID(ref.ID))
	if err != nil {
		return nil, fmt.Errorf("get playlist %s: %w", ref.ID, err)
	}

	playlist := &models.CandidatePlaylist{
		URI:   string(full.URI),
		ID:    string(full.ID),
		Title: full.Name,
		Owner: full.Owner.DisplayName,
	}

	page := full.Tracks
	for {
		for _, item := range page.Tracks {
			if item.Track.ID == "" || item.IsLocal {
				continue
			}
			playlist.Tracks = append(playlist.Tracks, models.PlaylistTrack{
				URI:        string(item.Track.URI),
				Title:      item.Track.Name,
				Artists:    artistNames(item.Track.Artists),
				DurationMS: int(item.Track.Duration),
				AlbumURI:   string(item.Track.Album.URI),
			})
			playlist.DurationMS += int(item.Track.Duration)
		}

		err = c.sp.NextPage(ctx, &page)
		if err == spotify.ErrNoMorePages {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("playlist %s pagination: %w", ref.ID, err)
		}
	}

	playlist.TotalTracks = len(playlist.Tracks)
	return playlist, nil
}
