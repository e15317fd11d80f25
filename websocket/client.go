package websocket

import (
	"context"
	"sync"
	"time"

	fws "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Conn is the subset of the upgraded connection the pumps write to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type Client struct {
	UserID uuid.UUID

	conn Conn
	send chan Event
	hub  *Hub

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func (c *Client) stop() {
	c.stopOnce.Do(func() {
		c.cancel()
		c.wg.Wait()
		_ = c.conn.Close()
	})
}

func (c *Client) writeLoop() {
	defer c.wg.Done()
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeTimeout))
			if err := c.conn.WriteJSON(ev); err != nil {
				c.hub.log.Debug("write failed", "user_id", c.UserID, "error", err)
				go c.hub.Unregister(c)
				return
			}
		}
	}
}

func (c *Client) pingLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.hub.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := c.conn.WriteControl(fws.PingMessage, nil, deadline); err != nil {
				c.hub.log.Debug("ping failed", "user_id", c.UserID, "error", err)
			}
		}
	}
}
