package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yleoer/lyricus/pkg/group"
	"github.com/yleoer/lyricus/pkg/lyric"
)

// 表格中歌词摘要的长度
const excerptLength = 60

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// printRecords 以表格输出记录，excerpt 大于 0 时追加歌词摘要列
func printRecords(w io.Writer, records []lyric.Record, excerpt int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if excerpt > 0 {
		fmt.Fprintln(tw, "ID\tSONG\tARTIST\tRELEASED\tLYRICS")
	} else {
		fmt.Fprintln(tw, "ID\tSONG\tARTIST\tRELEASED")
	}
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s", r.ID, r.SongName, r.ArtistName, r.FormattedDate())
		if excerpt > 0 {
			fmt.Fprintf(tw, "\t%s", strings.ReplaceAll(r.Excerpt(excerpt), "\n", " / "))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d songs found\n", len(records))
	return err
}

func printRecord(w io.Writer, r lyric.Record) error {
	fmt.Fprintf(w, "%s\n%s\n", r.SongName, r.ArtistName)
	if d := r.FormattedDate(); d != "" {
		fmt.Fprintf(w, "Released on %s\n", d)
	}
	fmt.Fprintln(w)
	for _, line := range r.Lines() {
		fmt.Fprintln(w, line)
	}
	return nil
}

func printArtists(w io.Writer, groups []group.Artist, preview int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tARTIST\tSONGS\tLATEST")
	for _, g := range groups {
		titles := make([]string, 0, preview)
		for i, s := range g.Songs {
			if i == preview {
				break
			}
			titles = append(titles, s.SongName)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", g.Initials, g.Name, g.SongCount, strings.Join(titles, ", "))
	}
	return tw.Flush()
}

// artistJSON 是分组的 JSON 输出形式
type artistJSON struct {
	Name      string         `json:"name"`
	Initials  string         `json:"initials"`
	SongCount int            `json:"songCount"`
	Songs     []lyric.Record `json:"songs"`
}

func toArtistJSON(groups []group.Artist) []artistJSON {
	out := make([]artistJSON, 0, len(groups))
	for _, g := range groups {
		out = append(out, artistJSON{Name: g.Name, Initials: g.Initials, SongCount: g.SongCount, Songs: g.Songs})
	}
	return out
}
