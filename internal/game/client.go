// client.go

package game

import (
	"sync"
	"time"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
)

// Client 一个WebSocket连接及其会话
type Client struct {
	ID       string
	PlayerID string
	Name     string
	Session  *session.Session

	// 发送队列，由 writePump 消费
	Send chan []byte

	mu         sync.Mutex
	lastActive time.Time
	closed     bool
	done       chan struct{}
}

// NewClient 创建连接
func NewClient(id, playerID, name string, sess *session.Session) *Client {
	return &Client{
		ID:         id,
		PlayerID:   playerID,
		Name:       name,
		Session:    sess,
		Send:       make(chan []byte, 256),
		lastActive: time.Now(),
		done:       make(chan struct{}),
	}
}

// Touch 记录活跃时间
func (c *Client) Touch() {
	c.mu.Lock()
	c.lastActive = time.Now()
	c.mu.Unlock()
}

// ShouldCleanup 是否闲置过久
func (c *Client) ShouldCleanup(idle time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return idle > 0 && time.Since(c.lastActive) > idle
}

// Enqueue 放入发送队列，队列满或已关闭时返回false
func (c *Client) Enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Close 关闭发送队列
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	close(c.done)
}

// Done 连接关闭时关闭的通道
func (c *Client) Done() <-chan struct{} {
	return c.done
}
