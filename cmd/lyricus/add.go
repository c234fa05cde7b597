package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yleoer/lyricus/pkg/converter"
	"github.com/yleoer/lyricus/pkg/lyric"
	"github.com/yleoer/lyricus/pkg/scanner"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		req        lyric.NewRequest
		file       string
		simplified bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit new lyrics",
		Example: `  lyricus add --song "Hello" --artist "Adele" --date 2015-10-23 --lyrics "Hello, it's me"
  lyricus add --file "Adele - Hello.txt"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				var tc converter.TextConverter = converter.Identity{}
				if simplified {
					var err error
					if tc, err = converter.NewOpenCCConverter(a.logger); err != nil {
						return err
					}
				}
				fromFile, err := scanner.NewLyricScanner(tc, a.logger).ScanFile(file)
				if err != nil {
					return err
				}
				// 命令行参数优先于文件内容
				req = merge(req, fromFile)
			}

			view := a.newView()
			defer view.Unmount()
			created, err := view.Submit(cmd.Context(), req)
			if err != nil {
				if errors.Is(err, lyric.ErrMissingFields) {
					return errors.New("song, artist and lyrics are required")
				}
				return err
			}
			if a.jsonOut {
				return printJSON(a.out, created)
			}
			return printRecords(a.out, []lyric.Record{created}, 0)
		},
	}
	cmd.Flags().StringVar(&req.SongName, "song", "", "song name")
	cmd.Flags().StringVar(&req.ArtistName, "artist", "", "artist name")
	cmd.Flags().StringVar(&req.ReleaseDate, "date", "", "release date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.Lyrics, "lyrics", "", "full lyrics text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the submission from a .txt, .lrc or .json file")
	cmd.Flags().BoolVar(&simplified, "simplified", false, "convert traditional Chinese in --file to simplified")
	return cmd
}

func merge(flags, file lyric.NewRequest) lyric.NewRequest {
	if flags.SongName == "" {
		flags.SongName = file.SongName
	}
	if flags.ArtistName == "" {
		flags.ArtistName = file.ArtistName
	}
	if flags.ReleaseDate == "" {
		flags.ReleaseDate = file.ReleaseDate
	}
	if flags.Lyrics == "" {
		flags.Lyrics = file.Lyrics
	}
	return flags
}
