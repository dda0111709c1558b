package stream

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSClient wraps a websocket connection as a hub Subscriber.
type WSClient struct {
	conn *websocket.Conn
	log  *zap.Logger
	mu   sync.Mutex
}

// NewWSClient constructs a client wrapper.
func NewWSClient(conn *websocket.Conn, log *zap.Logger) *WSClient {
	return &WSClient{conn: conn, log: log}
}

// Send writes a text message to the connection.
func (c *WSClient) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.log.Warn("websocket send failed", zap.Error(err))
		_ = c.conn.Close()
		return err
	}
	return nil
}

// Close terminates the connection.
func (c *WSClient) Close() {
	_ = c.conn.Close()
}
