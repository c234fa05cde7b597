package converter

import "github.com/yleoer/lyricus/pkg/lyric"

// TextConverter 定义文本转换器接口
type TextConverter interface {
	TradToSim(text string) string // 将繁体中文转换为简体
}

// Identity 原样返回文本
type Identity struct{}

func (Identity) TradToSim(text string) string { return text }

// ConvertRequest 转换投稿中的歌名、歌手和歌词
func ConvertRequest(c TextConverter, req lyric.NewRequest) lyric.NewRequest {
	req.SongName = c.TradToSim(req.SongName)
	req.ArtistName = c.TradToSim(req.ArtistName)
	req.Lyrics = c.TradToSim(req.Lyrics)
	return req
}

// ConvertRecord 转换一条记录用于展示
func ConvertRecord(c TextConverter, r lyric.Record) lyric.Record {
	r.SongName = c.TradToSim(r.SongName)
	r.ArtistName = c.TradToSim(r.ArtistName)
	r.Lyrics = c.TradToSim(r.Lyrics)
	return r
}
