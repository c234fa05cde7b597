package lyric

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrMissingFields 表示新建歌词请求缺少必填字段
var ErrMissingFields = errors.New("song_name, artist_name and lyrics are required")

// Record 代表服务器上的一条歌词记录
type Record struct {
	ID          int64  `json:"id"`
	SongName    string `json:"song_name"`
	ArtistName  string `json:"artist_name"`
	ReleaseDate string `json:"release_date"` // ISO 8601，可能为空
	Lyrics      string `json:"lyrics"`       // 以 \n 分隔的多行文本
}

// NewRequest 是创建歌词时提交的请求体，没有 id
type NewRequest struct {
	SongName    string `json:"song_name"`
	ArtistName  string `json:"artist_name"`
	ReleaseDate string `json:"release_date"`
	Lyrics      string `json:"lyrics"`
}

// Validate 检查必填字段，发行日期可选
func (r NewRequest) Validate() error {
	if strings.TrimSpace(r.SongName) == "" ||
		strings.TrimSpace(r.ArtistName) == "" ||
		strings.TrimSpace(r.Lyrics) == "" {
		return ErrMissingFields
	}
	return nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate 解析发行日期，无法解析时返回 false
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Released 返回解析后的发行日期
func (r Record) Released() (time.Time, bool) {
	return ParseDate(r.ReleaseDate)
}

// FormattedDate 以 "Jan 2, 2006" 格式输出发行日期，缺失时返回空字符串
func (r Record) FormattedDate() string {
	t, ok := r.Released()
	if !ok {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// Lines 按行拆分歌词
func (r Record) Lines() []string {
	if r.Lyrics == "" {
		return nil
	}
	return strings.Split(r.Lyrics, "\n")
}

// Excerpt 截取歌词摘要，超过 max 个字符时追加 "..."
func (r Record) Excerpt(max int) string {
	if max <= 0 || utf8.RuneCountInString(r.Lyrics) <= max {
		return r.Lyrics
	}
	runes := []rune(r.Lyrics)
	return string(runes[:max]) + "..."
}
