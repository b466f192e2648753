// Package trace broadcasts executed instructions to websocket
// clients as they happen.
package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"

	"github.com/thelolagemann/sm83/pkg/log"
)

// ErrClosed is returned when publishing to a closed Hub.
var ErrClosed = errors.New("trace hub closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub maintains the set of connected clients and broadcasts
// events to them. Clients that cannot keep up are dropped.
type Hub struct {
	clients map[*client]bool

	broadcast            chan []byte
	register, unregister chan *client
	done, stopped        chan struct{}
	closeOnce            sync.Once
	closeErr             error

	// deadlines for writes and for the pong answering a ping
	writeWait, pongWait time.Duration

	log log.Logger
	mu  sync.Mutex
}

// NewHub creates a new Hub and starts its broadcast loop.
func NewHub(l log.Logger) *Hub {
	if l == nil {
		l = log.NewNullLogger()
	}
	h := &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		writeWait:  defaultWriteWait,
		pongWait:   defaultPongWait,
		log:        l,
	}
	go h.run()

	return h
}

// pingPeriod leaves a client time to answer before pongWait runs out.
func (h *Hub) pingPeriod() time.Duration {
	return h.pongWait * 9 / 10
}

func (h *Hub) run() {
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Debugf("trace: dropping slow client %s", c.conn.RemoteAddr())
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		case <-h.done:
			return
		}
	}
}

// ServeHTTP upgrades the request to a websocket connection and
// registers it as a client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("trace: upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	h.log.Debugf("trace: client connected from %s", r.RemoteAddr)

	go c.readPump()
	go c.writePump()
}

func (h *Hub) unregisterClient(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish broadcasts e to every connected client.
func (h *Hub) Publish(e Event) error {
	msg, err := json.Marshal(e)
	if err != nil {
		return err
	}

	select {
	case <-h.done:
		return ErrClosed
	default:
	}

	select {
	case h.broadcast <- msg:
		return nil
	case <-h.done:
		return ErrClosed
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close stops the hub and sends every client a close frame.
// Clients that could not be sent one are reported in the
// returned error.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)
		<-h.stopped

		h.mu.Lock()
		defer h.mu.Unlock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		for c := range h.clients {
			err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.writeWait))
			if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
				h.closeErr = multierror.Append(h.closeErr, fmt.Errorf("closing %s: %w", c.conn.RemoteAddr(), err))
			}
			close(c.send)
			delete(h.clients, c)
		}
	})
	return h.closeErr
}
