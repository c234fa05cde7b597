package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yleoer/lyricus/pkg/browse"
)

func newTrendingCmd(a *app) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending songs, recent hits and popular artists",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := a.newView(browse.WithFetchFailure(browse.MsgTrendingFailed))
			defer view.Unmount()
			if err := view.Mount(cmd.Context()); err != nil {
				return err
			}
			t := view.Trending(size)

			if a.jsonOut {
				return printJSON(a.out, map[string]any{
					"trending":       t.Trending,
					"recentHits":     t.RecentHits,
					"popularArtists": toArtistJSON(t.PopularArtists),
				})
			}
			fmt.Fprintln(a.out, "== Trending Now")
			if err := printRecords(a.out, t.Trending, excerptLength); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "\n== Recent Hits")
			if err := printRecords(a.out, t.RecentHits, 0); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "\n== Popular Artists")
			return printArtists(a.out, t.PopularArtists, 3)
		},
	}
	cmd.Flags().IntVar(&size, "size", 9, "number of trending songs")
	return cmd
}
