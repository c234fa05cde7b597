// Package query 提供对内存中歌词列表的检索、过滤和排序，所有函数都不修改输入。
package query

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/yleoer/lyricus/pkg/lyric"
)

// Params 是一次查询的全部参数
type Params struct {
	Term       string // 自由文本
	Artist     string // 精确匹配 artist_name，空表示不过滤
	Genre      string // 需要 Classifier 才生效
	Sort       SortKey
	Direction  Direction
	Classifier Classifier
	Locale     language.Tag // 标题和歌手排序使用的语言，零值为英语
}

// Apply 依次执行文本检索、歌手过滤、分类过滤和排序
func Apply(records []lyric.Record, p Params) []lyric.Record {
	out := Search(records, p.Term)
	out = ByArtist(out, p.Artist)
	out = ByGenre(out, p.Genre, p.Classifier)
	return sortWithLocale(out, p.Sort, p.Direction, p.Locale)
}

// Search 在歌名、歌手和歌词中做大小写不敏感的子串匹配，空白查询返回全部
func Search(records []lyric.Record, term string) []lyric.Record {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return clone(records)
	}
	out := make([]lyric.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

// Matches 判断记录是否包含已小写化的关键字
func Matches(r lyric.Record, needle string) bool {
	return strings.Contains(strings.ToLower(r.SongName), needle) ||
		strings.Contains(strings.ToLower(r.ArtistName), needle) ||
		strings.Contains(strings.ToLower(r.Lyrics), needle)
}

// ByArtist 按歌手名精确过滤
func ByArtist(records []lyric.Record, artist string) []lyric.Record {
	if artist == "" {
		return clone(records)
	}
	out := make([]lyric.Record, 0, len(records))
	for _, r := range records {
		if r.ArtistName == artist {
			out = append(out, r)
		}
	}
	return out
}

// ByGenre 用 Classifier 过滤分类；没有分类器或分类为空时不过滤
func ByGenre(records []lyric.Record, genre string, c Classifier) []lyric.Record {
	if genre == "" || c == nil {
		return clone(records)
	}
	out := make([]lyric.Record, 0, len(records))
	for _, r := range records {
		if c.Matches(r, genre) {
			out = append(out, r)
		}
	}
	return out
}

func clone(records []lyric.Record) []lyric.Record {
	out := make([]lyric.Record, len(records))
	copy(out, records)
	return out
}
