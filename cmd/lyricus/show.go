package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yleoer/lyricus/pkg/converter"
)

func newShowCmd(a *app) *cobra.Command {
	var simplified bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full lyrics of one song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			view := a.newView()
			defer view.Unmount()

			r, err := view.Open(cmd.Context(), id)
			if err != nil {
				return err
			}
			if simplified {
				tc, err := converter.NewOpenCCConverter(a.logger)
				if err != nil {
					return err
				}
				r = converter.ConvertRecord(tc, r)
			}
			if a.jsonOut {
				return printJSON(a.out, r)
			}
			return printRecord(a.out, r)
		},
	}
	cmd.Flags().BoolVar(&simplified, "simplified", false, "convert traditional Chinese to simplified before printing")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid lyric id %q", s)
	}
	return id, nil
}
