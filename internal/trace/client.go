package trace

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultWriteWait = 10 * time.Second
	defaultPongWait  = 60 * time.Second

	// clients only ever send pongs and close frames
	maxMessageSize = 512
)

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readPump discards anything the client sends and keeps the read
// deadline alive on pongs. The client is unregistered once the
// connection fails or stops answering pings.
func (c *client) readPump() {
	defer c.hub.unregisterClient(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.hub.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debugf("trace: client %s: %v", c.conn.RemoteAddr(), err)
			}
			return
		}
	}
}

// writePump writes events and pings to the client until the hub
// closes its send channel or a write fails.
func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.pingPeriod())
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeWait))
			if !ok {
				// hub dropped or closed us; a close frame may already be out
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
