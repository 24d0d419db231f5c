package network

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ClientID identifies a connected subscriber
type ClientID uint32

// client is one websocket subscriber with its own write goroutine
type client struct {
	id       ClientID
	addr     string
	conn     *websocket.Conn
	lastSent atomic.Int64 // UnixNano

	// Send queue
	sendCh chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newClient(id ClientID, conn *websocket.Conn, sendQueueSize int) *client {
	return &client{
		id:      id,
		addr:    conn.RemoteAddr().String(),
		conn:    conn,
		sendCh:  make(chan []byte, sendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// send queues an encoded frame
// Returns false if the client is closed or its queue is full
func (c *client) send(data []byte) bool {
	select {
	case <-c.closeCh:
		return false
	default:
	}

	select {
	case c.sendCh <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		c.conn.Close()
	})
}

// readLoop discards inbound messages; it only exists to notice the peer going away
func (c *client) readLoop() {
	defer c.close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop sends queued frames until the client closes
func (c *client) writeLoop(timeout time.Duration) {
	defer c.close()

	for {
		select {
		case <-c.closeCh:
			return
		case data := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(timeout))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
			c.lastSent.Store(time.Now().UnixNano())
		}
	}
}
