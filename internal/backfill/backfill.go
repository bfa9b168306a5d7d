// Package backfill patches library rows the warehouse has incomplete
// metadata for by asking YouTube directly.
package backfill

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"

	"yt-spotify-sync/internal/models"
)

// videoFetcher is the slice of the YouTube client we use; tests fake it.
type videoFetcher interface {
	GetVideoContext(ctx context.Context, id string) (*youtube.Video, error)
}

// Filler fetches durations and descriptions for records that are missing
// them. Lookups are best-effort: a failure leaves the record untouched and
// the matcher falls back to whatever the warehouse had.
type Filler struct {
	yt videoFetcher
}

func New() *Filler {
	return &Filler{yt: &youtube.Client{}}
}

// Fill patches records with a zero duration in place.
func (f *Filler) Fill(ctx context.Context, records []models.VideoRecord) {
	filled := 0
	for i := range records {
		if records[i].DurationMS > 0 {
			continue
		}

		video, err := f.yt.GetVideoContext(ctx, records[i].VideoID)
		if err != nil {
			log.Printf("backfill: video %s: %v", records[i].VideoID, err)
			continue
		}

		records[i].DurationMS = int(video.Duration / time.Millisecond)
		if records[i].Description == "" {
			records[i].Description = strings.ToLower(video.Description)
		}
		filled++
	}
	if filled > 0 {
		log.Printf("backfill: %d records filled from YouTube", filled)
	}
}
