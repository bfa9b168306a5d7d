package matcher

import (
	"strings"

	"yt-spotify-sync/internal/models"
)

const (
	// trackMaxDiffMS accepts a track when its duration is within 5 seconds
	// of the video.
	trackMaxDiffMS = 5000
	// groupMaxDiffMS accepts an album or playlist when its total duration is
	// within 40 seconds of the video.
	groupMaxDiffMS = 40000
	// minObjectiveTracks is the smallest tracklist for which the
	// percent-in-description rule is meaningful.
	minObjectiveTracks = 4
	minPercentInDesc   = 60.0
)

// Score is the scorer verdict for a single candidate. A rejected candidate
// only fails that candidate; the cascade keeps examining the rest.
type Score struct {
	Accepted     bool
	DifferenceMS int
	TracksInDesc int
}

// ScoreTrack accepts a track candidate when the durations are close enough,
// or when both the track title and at least one artist appear in the video
// title (case-insensitive).
func ScoreTrack(rec models.VideoRecord, c models.CandidateTrack) Score {
	diff := c.DurationMS - rec.DurationMS
	if diff < 0 {
		diff = -diff
	}

	titleLower := strings.ToLower(rec.Title)
	trackInTitle := strings.Contains(titleLower, strings.ToLower(c.Title))

	artistInTitle := false
	for _, a := range c.Artists {
		if strings.Contains(titleLower, strings.ToLower(a)) {
			artistInTitle = true
			break
		}
	}

	if diff <= trackMaxDiffMS || (trackInTitle && artistInTitle) {
		return Score{Accepted: true, DifferenceMS: diff, TracksInDesc: 1}
	}
	return Score{}
}

// ScoreAlbum accepts an album candidate when its total duration is close to
// the video, or when enough of its track titles show up in the video
// description.
func ScoreAlbum(rec models.VideoRecord, c *models.CandidateAlbum) Score {
	diff := rec.DurationMS
	inDesc := 0
	for _, t := range c.Tracks {
		diff -= t.DurationMS
		if strings.Contains(rec.Description, strings.ToLower(t.Title)) {
			inDesc++
		}
	}
	return scoreGroup(diff, inDesc, len(c.Tracks))
}

// ScorePlaylist is the album rule applied to a playlist's still-available
// tracks. Deleted and local entries never reach here; the catalog layer
// drops them, so they count toward neither the duration nor the total.
func ScorePlaylist(rec models.VideoRecord, c *models.CandidatePlaylist) Score {
	diff := rec.DurationMS
	inDesc := 0
	for _, t := range c.Tracks {
		diff -= t.DurationMS
		if strings.Contains(rec.Description, strings.ToLower(t.Title)) {
			inDesc++
		}
	}
	return scoreGroup(diff, inDesc, len(c.Tracks))
}

func scoreGroup(diff, inDesc, total int) Score {
	if total == 0 {
		// Empty tracklist: nothing to compare against, reject.
		return Score{}
	}

	abs := diff
	if abs < 0 {
		abs = -abs
	}
	percent := float64(inDesc) / float64(total) * 100

	if abs < groupMaxDiffMS || (total >= minObjectiveTracks && percent >= minPercentInDesc) {
		return Score{Accepted: true, DifferenceMS: abs, TracksInDesc: inDesc}
	}
	return Score{}
}
