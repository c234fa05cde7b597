package group

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yleoer/lyricus/pkg/lyric"
)

// SongOrder 决定每个歌手分组内歌曲的顺序，由调用方显式选择
type SongOrder int

const (
	SourceOrder SongOrder = iota // 保持输入顺序
	NewestFirst                  // 按 id 从大到小
)

// Artist 是按歌手聚合的歌曲
type Artist struct {
	Name      string
	Songs     []lyric.Record
	SongCount int
	Initials  string
}

// ByArtist 按 artist_name 精确分组，分组按歌曲数从多到少排列，
// 数量相同的按首次出现的顺序
func ByArtist(records []lyric.Record, order SongOrder) []Artist {
	index := make(map[string]int)
	var groups []Artist
	for _, r := range records {
		i, ok := index[r.ArtistName]
		if !ok {
			i = len(groups)
			index[r.ArtistName] = i
			groups = append(groups, Artist{Name: r.ArtistName, Initials: Initials(r.ArtistName)})
		}
		groups[i].Songs = append(groups[i].Songs, r)
	}

	for i := range groups {
		groups[i].SongCount = len(groups[i].Songs)
		if order == NewestFirst {
			songs := groups[i].Songs
			sort.SliceStable(songs, func(a, b int) bool { return songs[a].ID > songs[b].ID })
		}
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].SongCount > groups[b].SongCount })
	if groups == nil {
		groups = []Artist{}
	}
	return groups
}

// Initials 取前两个单词的首字母并转为大写，单个单词只返回一个字母
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
		if n++; n == 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

// Top 返回前 n 个分组
func Top(groups []Artist, n int) []Artist {
	if n < 0 || n >= len(groups) {
		n = len(groups)
	}
	out := make([]Artist, n)
	copy(out, groups[:n])
	return out
}

// FilterByName 按歌手名做大小写不敏感的子串过滤，空白查询返回全部
func FilterByName(groups []Artist, q string) []Artist {
	needle := strings.ToLower(strings.TrimSpace(q))
	out := make([]Artist, 0, len(groups))
	for _, g := range groups {
		if needle == "" || strings.Contains(strings.ToLower(g.Name), needle) {
			out = append(out, g)
		}
	}
	return out
}

// Names 返回去重后按字典序排列的歌手名
func Names(records []lyric.Record) []string {
	seen := make(map[string]struct{}, len(records))
	names := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.ArtistName]; ok {
			continue
		}
		seen[r.ArtistName] = struct{}{}
		names = append(names, r.ArtistName)
	}
	sort.Strings(names)
	return names
}
