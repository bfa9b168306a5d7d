// Package report renders the end-of-run summary.
package report

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"yt-spotify-sync/internal/runstate"
)

// Summary renders the run counters as a table.
func Summary(st *runstate.State, notFound int, elapsed time.Duration) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"result", "count"})

	rows := []struct {
		name  string
		count int
	}{
		{"distinct albums", len(st.Albums)},
		{"distinct playlists (others)", len(st.PlaylistsOthers)},
		{"distinct tracks", len(st.Tracks)},
		{"albums liked", len(st.AlbumsToLike)},
		{"playlists followed", len(st.PlaylistsToLike)},
		{"tracks liked", len(st.TracksToLike)},
		{"playlist items added", st.StagedItems()},
		{"ledger entries", st.LedgerLen()},
		{"not found", notFound},
	}
	for _, r := range rows {
		tw.AppendRow(table.Row{r.name, r.count})
	}
	tw.AppendFooter(table.Row{"elapsed", elapsed.Round(time.Second).String()})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}
