package notify

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Variant 区分普通提示和错误提示
type Variant string

const (
	Default     Variant = "default"
	Destructive Variant = "destructive"
)

// Notice 是发给用户的一条提示
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Success 构造一条成功提示
func Success(description string) Notice {
	return Notice{Title: "Success", Description: description, Variant: Default}
}

// Failure 构造一条错误提示
func Failure(description string) Notice {
	return Notice{Title: "Error", Description: description, Variant: Destructive}
}

// Notifier 是注入给调用方的提示通道
type Notifier interface {
	Notify(n Notice)
}

// Channel 用带缓冲的 channel 传递提示，缓冲满时丢弃而不阻塞调用方
type Channel struct {
	ch      chan Notice
	dropped atomic.Int64
}

// NewChannel 创建一个新的 Channel
func NewChannel(size int) *Channel {
	if size < 1 {
		size = 1
	}
	return &Channel{ch: make(chan Notice, size)}
}

func (c *Channel) Notify(n Notice) {
	select {
	case c.ch <- n:
	default:
		c.dropped.Add(1)
	}
}

// C 返回只读的提示 channel
func (c *Channel) C() <-chan Notice { return c.ch }

// Dropped 返回因缓冲已满被丢弃的提示数
func (c *Channel) Dropped() int64 { return c.dropped.Load() }

// Discard 丢弃所有提示
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// LogNotifier 把提示写入日志
type LogNotifier struct {
	Logger *zap.Logger
}

func (l LogNotifier) Notify(n Notice) {
	fields := []zap.Field{zap.String("title", n.Title), zap.String("description", n.Description)}
	if n.Variant == Destructive {
		l.Logger.Error("Notice", fields...)
		return
	}
	l.Logger.Info("Notice", fields...)
}

// Multi 把提示同时发给多个 Notifier
type Multi []Notifier

func (m Multi) Notify(n Notice) {
	for _, nt := range m {
		nt.Notify(n)
	}
}
