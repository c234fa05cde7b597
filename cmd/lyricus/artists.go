package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yleoer/lyricus/pkg/group"
)

func newArtistsCmd(a *app) *cobra.Command {
	var (
		term   string
		limit  int
		source bool
		names  bool
	)

	cmd := &cobra.Command{
		Use:   "artists",
		Short: "Group songs by artist, most prolific first",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := a.newView()
			defer view.Unmount()
			if err := view.Mount(cmd.Context()); err != nil {
				return err
			}

			if names {
				list := group.Names(view.Records())
				if a.jsonOut {
					return printJSON(a.out, list)
				}
				for _, n := range list {
					fmt.Fprintln(a.out, n)
				}
				return nil
			}

			order := group.NewestFirst
			if source {
				order = group.SourceOrder
			}
			groups := group.FilterByName(view.Artists(order), term)
			if limit > 0 {
				groups = group.Top(groups, limit)
			}

			if a.jsonOut {
				return printJSON(a.out, toArtistJSON(groups))
			}
			return printArtists(a.out, groups, 2)
		},
	}
	cmd.Flags().StringVarP(&term, "query", "q", "", "filter artists by name")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of artists (0 for all)")
	cmd.Flags().BoolVar(&source, "source-order", false, "keep songs in server order instead of newest first")
	cmd.Flags().BoolVar(&names, "names", false, "only print the sorted list of artist names")
	return cmd
}
