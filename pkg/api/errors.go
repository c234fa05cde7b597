package api

import (
	"errors"
	"fmt"
)

// TransportError 是所有 API 调用失败时返回的统一错误
type TransportError struct {
	Op         string // fetchAll, fetchById, create, download
	URL        string
	StatusCode int    // 无响应时为 0
	Status     string // 例如 "500 Internal Server Error"
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.URL, e.Status, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: %s", e.Op, e.URL, e.Status)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// NetworkError 表示没有拿到任何响应（连接、DNS、超时）
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetwork 判断错误是否为网络层失败
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// StatusCode 返回错误携带的 HTTP 状态码，没有时返回 0
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
