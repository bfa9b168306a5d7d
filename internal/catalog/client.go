// Package catalog wraps the Spotify Web API behind the narrow search,
// detail, snapshot and mutation surface the rest of the program uses.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Config carries the Spotify app credentials and the user's refresh token.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Client is a thin wrapper over the Spotify Web API client. Search and
// detail calls share one rate limiter so long cascades don't trip the API
// rate window.
type Client struct {
	sp      *spotify.Client
	limiter *rate.Limiter
	userID  string
}

// New authenticates with the refresh token and resolves the current user id,
// which playlist creation needs.
func New(ctx context.Context, cfg Config) (*Client, error) {
	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserLibraryRead,
			spotifyauth.ScopeUserLibraryModify,
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopePlaylistModifyPrivate,
			spotifyauth.ScopePlaylistModifyPublic,
		),
	)

	// An expired token with only the refresh token set forces the oauth2
	// transport to refresh on first use.
	token := &oauth2.Token{RefreshToken: cfg.RefreshToken}
	sp := spotify.New(auth.Client(ctx, token))

	user, err := sp.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &Client{
		sp:      sp,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		userID:  user.ID,
	}, nil
}

// idFromURI extracts the bare id from a URI like spotify:track:xyz.
func idFromURI(uri string) spotify.ID {
	parts := strings.Split(uri, ":")
	return spotify.ID(parts[len(parts)-1])
}

func artistNames(artists []spotify.SimpleArtist) []string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return names
}
