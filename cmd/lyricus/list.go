package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yleoer/lyricus/pkg/query"
)

func newListCmd(a *app) *cobra.Command {
	var (
		term, artist, genre, sortBy, order string
		limit                              int
		excerpt                            bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"search", "browse"},
		Short:   "List lyrics matching a query",
		Example: `  lyricus list -q love --sort title
  lyricus search --artist "Adele" --sort date --order asc
  lyricus list --sort oldest --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, dir, err := query.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			if order != "" {
				if dir, err = query.ParseDirection(order); err != nil {
					return err
				}
			}

			view := a.newView()
			defer view.Unmount()
			if err := view.Mount(cmd.Context()); err != nil {
				return err
			}

			p := query.Params{Term: term, Artist: artist, Genre: genre, Sort: key, Direction: dir}
			if genre != "" {
				p.Classifier = query.KeywordClassifier{}
			}
			results := view.Results(p)
			if limit > 0 {
				results = query.Window(results, 0, limit)
			}

			if a.jsonOut {
				return printJSON(a.out, results)
			}
			n := 0
			if excerpt {
				n = excerptLength
			}
			return printRecords(a.out, results, n)
		},
	}

	cmd.Flags().StringVarP(&term, "query", "q", "", "free-text search over song, artist and lyrics")
	cmd.Flags().StringVar(&artist, "artist", "", "only songs by this exact artist name")
	cmd.Flags().StringVar(&genre, "genre", "", fmt.Sprintf("genre keyword filter, one of %v", query.Genres))
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "relevance", "sort key: relevance, recent, oldest, title, artist, date")
	cmd.Flags().StringVarP(&order, "order", "o", "", "sort direction: asc or desc (default depends on --sort)")
	cmd.Flags().BoolVar(&excerpt, "excerpt", false, "show the beginning of each song's lyrics")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of results (0 for all)")
	return cmd
}
