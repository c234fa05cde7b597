package scanner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/yleoer/lyricus/pkg/converter"
	"github.com/yleoer/lyricus/pkg/lyric"
	"github.com/yleoer/lyricus/pkg/util"
)

var (
	headerRegex  = regexp.MustCompile(`^(?i)(title|song|song_name|artist|artist_name|date|released|release_date)\s*[:：]\s*(.*)$`)
	lrcTimeRegex = regexp.MustCompile(`\[\d{1,2}:\d{2}(?:[.:]\d{1,3})?\]`)
	lrcMetaRegex = regexp.MustCompile(`^\[(?i)(ti|ar|al|by|offset|length|re|ve):([^\]]*)\]$`)
	// 文件名形如 "歌手 - 歌名.txt"
	fileNameRegex = regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`)
)

// LyricScanner 负责把投稿文件解析为 NewRequest
type LyricScanner struct {
	converter converter.TextConverter
	logger    *zap.Logger
}

// NewLyricScanner 创建一个新的 LyricScanner 实例
func NewLyricScanner(tc converter.TextConverter, logger *zap.Logger) *LyricScanner {
	if tc == nil {
		tc = converter.Identity{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LyricScanner{converter: tc, logger: logger}
}

// ScanFile 读取并解析投稿文件
func (s *LyricScanner) ScanFile(path string) (lyric.NewRequest, error) {
	content, err := util.ReadTextFileContent(path)
	if err != nil {
		return lyric.NewRequest{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var req lyric.NewRequest
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal([]byte(content), &req); err != nil {
			return lyric.NewRequest{}, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
		}
	} else {
		req = s.Parse(filepath.Base(path), content)
	}
	req = converter.ConvertRequest(s.converter, req)
	req.Lyrics = strings.TrimSpace(req.Lyrics)
	s.logger.Debug("Scanned submission file",
		zap.String("path", path), zap.String("song", req.SongName), zap.String("artist", req.ArtistName))
	return req, nil
}

// Parse 解析纯文本或 LRC 内容。头部为 "Key: value" 行，空行之后为歌词；
// 缺少歌名和歌手时从文件名推断
func (s *LyricScanner) Parse(fileName, content string) lyric.NewRequest {
	var req lyric.NewRequest
	var body []string
	inHeader := true

	sc := bufio.NewScanner(strings.NewReader(strings.ReplaceAll(content, "\r\n", "\n")))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if m := lrcMetaRegex.FindStringSubmatch(trimmed); len(m) > 2 {
			switch strings.ToLower(m[1]) {
			case "ti":
				req.SongName = strings.TrimSpace(m[2])
			case "ar":
				req.ArtistName = strings.TrimSpace(m[2])
			}
			continue
		}
		if inHeader {
			if m := headerRegex.FindStringSubmatch(trimmed); len(m) > 2 {
				value := strings.TrimSpace(m[2])
				switch strings.ToLower(m[1]) {
				case "title", "song", "song_name":
					req.SongName = value
				case "artist", "artist_name":
					req.ArtistName = value
				case "date", "released", "release_date":
					req.ReleaseDate = value
				}
				continue
			}
			if trimmed == "" {
				continue
			}
			inHeader = false
		}
		body = append(body, strings.TrimSpace(lrcTimeRegex.ReplaceAllString(line, "")))
	}
	req.Lyrics = strings.Join(body, "\n")

	if req.SongName == "" || req.ArtistName == "" {
		artist, title := parseArtistTitleFromFileName(fileName)
		if req.SongName == "" {
			req.SongName = title
		}
		if req.ArtistName == "" {
			req.ArtistName = artist
		}
	}
	return req
}

func parseArtistTitleFromFileName(fileName string) (artist, title string) {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if m := fileNameRegex.FindStringSubmatch(base); len(m) > 2 {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	// 无法推断歌手，只用文件名作为歌名
	return "", strings.TrimSpace(base)
}
