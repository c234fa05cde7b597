package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yleoer/lyricus/pkg/lyric"
	"github.com/yleoer/lyricus/pkg/saver"
)

var filenamePattern = regexp.MustCompile(`filename="(.+)"`)

var _ Fetcher = (*Client)(nil)

// Client 是 Fetcher 的 HTTP 实现
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient 创建一个新的 Client 实例，超时由调用方通过 httpClient 控制
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchAll 获取全部歌词，响应体不是数组时返回空列表
func (c *Client) FetchAll(ctx context.Context) ([]lyric.Record, error) {
	const op = "fetchAll"
	body, resp, err := c.do(ctx, op, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &TransportError{Op: op, URL: c.baseURL, StatusCode: resp.StatusCode, Status: resp.Status,
			Err: fmt.Errorf("decode response: %w", err)}
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		c.logger.Warn("Response body is not an array, treating as empty",
			zap.String("op", op), zap.String("url", c.baseURL))
		return []lyric.Record{}, nil
	}

	var records []lyric.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &TransportError{Op: op, URL: c.baseURL, StatusCode: resp.StatusCode, Status: resp.Status,
			Err: fmt.Errorf("decode records: %w", err)}
	}
	if records == nil {
		records = []lyric.Record{}
	}
	c.logger.Debug("Fetched lyrics", zap.Int("count", len(records)))
	return records, nil
}

// FetchByID 获取单条歌词
func (c *Client) FetchByID(ctx context.Context, id int64) (lyric.Record, error) {
	const op = "fetchById"
	u := fmt.Sprintf("%s/%d", c.baseURL, id)
	body, resp, err := c.do(ctx, op, http.MethodGet, u, nil)
	if err != nil {
		return lyric.Record{}, err
	}
	var rec lyric.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return lyric.Record{}, &TransportError{Op: op, URL: u, StatusCode: resp.StatusCode, Status: resp.Status,
			Err: fmt.Errorf("decode record: %w", err)}
	}
	return rec, nil
}

// Create 提交新歌词，返回服务器分配 id 后的记录
func (c *Client) Create(ctx context.Context, req lyric.NewRequest) (lyric.Record, error) {
	const op = "create"
	payload, err := json.Marshal(req)
	if err != nil {
		return lyric.Record{}, &TransportError{Op: op, URL: c.baseURL, Err: fmt.Errorf("encode request: %w", err)}
	}
	body, resp, err := c.do(ctx, op, http.MethodPost, c.baseURL, payload)
	if err != nil {
		return lyric.Record{}, err
	}
	var rec lyric.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return lyric.Record{}, &TransportError{Op: op, URL: c.baseURL, StatusCode: resp.StatusCode, Status: resp.Status,
			Err: fmt.Errorf("decode created record: %w", err)}
	}
	c.logger.Info("Lyric created", zap.Int64("id", rec.ID), zap.String("song", rec.SongName))
	return rec, nil
}

// Download 下载歌词 PDF 并交给 dst 保存，返回使用的文件名
func (c *Client) Download(ctx context.Context, id int64, dst saver.Saver) (string, error) {
	const op = "download"
	u := fmt.Sprintf("%s%s/%d", c.baseURL, downloadPath, id)

	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", &TransportError{Op: op, URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.send(op, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	name := DownloadFilename(id, resp.Header.Get("Content-Disposition"))
	path, err := dst.Save(name, resp.Body)
	if err != nil {
		return "", &TransportError{Op: op, URL: u, StatusCode: resp.StatusCode, Status: resp.Status,
			Err: fmt.Errorf("save %s: %w", name, err)}
	}
	c.logger.Info("Lyric downloaded", zap.Int64("id", id), zap.String("file", path))
	return name, nil
}

// DownloadFilename 从 Content-Disposition 中提取文件名，缺失时使用 lyric-<id>.pdf
func DownloadFilename(id int64, contentDisposition string) string {
	if contentDisposition != "" {
		if m := filenamePattern.FindStringSubmatch(contentDisposition); len(m) > 1 {
			return m[1]
		}
	}
	return fmt.Sprintf("lyric-%d.pdf", id)
}

// do 发送请求并读取完整响应体，非 2xx 状态统一转换为 TransportError
func (c *Client) do(ctx context.Context, op, method, u string, payload []byte) ([]byte, *http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, u, body)
	if err != nil {
		return nil, nil, &TransportError{Op: op, URL: u, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(op, req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Op: op, URL: u, StatusCode: resp.StatusCode, Status: resp.Status,
			Err: fmt.Errorf("read response: %w", err)}
	}
	return data, resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// send 执行请求；调用方负责在成功时关闭响应体
func (c *Client) send(op string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	u := req.URL.String()
	requestID := req.Header.Get("X-Request-ID")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Request failed",
			zap.String("op", op), zap.String("url", u), zap.String("request_id", requestID), zap.Error(err))
		return nil, &TransportError{Op: op, URL: u, Err: &NetworkError{Err: err}}
	}

	c.logger.Debug("Request completed",
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.String("url", u),
		zap.String("request_id", requestID),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &TransportError{Op: op, URL: u, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}
