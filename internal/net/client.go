package net

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Client is a PEER's connection to the host.
type Client struct {
	conn   *websocket.Conn
	logger *log.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
}

var _ Outbox = (*Client)(nil)

// Dial connects to the host at a share link or host:port.
func Dial(ctx context.Context, link string, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	u, err := ParseLink(link)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("net: dial %s: %w", u, err)
	}
	logger.Info("connected to host", "url", u, "local", conn.LocalAddr().String())
	return &Client{conn: conn, logger: logger}, nil
}

// LocalAddr returns this side's address.
func (c *Client) LocalAddr() string {
	return c.conn.LocalAddr().String()
}

// Send writes m to the host.
func (c *Client) Send(m Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(m); err != nil {
		return fmt.Errorf("net: send %s: %w", m.Type, err)
	}
	return nil
}

// Listen reads messages from the host and passes each to handle until the
// connection drops or ctx is done. A clean shutdown returns nil.
func (c *Client) Listen(ctx context.Context, handle func(Message)) error {
	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()

	for {
		var m Message
		if err := c.conn.ReadJSON(&m); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("net: read: %w", err)
		}
		c.logger.Debug("received", "type", m.Type)
		handle(m)
	}
}

// Close says goodbye to the host and closes the connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}
