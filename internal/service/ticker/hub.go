// Package ticker pushes periodic price snapshots to connected websocket
// clients so open market views stay live without polling.
package ticker

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"OddsLens/internal/domain/models"
	domsvc "OddsLens/internal/domain/service"
	xlogger "OddsLens/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 50 * time.Second
	sendBufferSize = 16
)

// priceFrame is one broadcast message.
type priceFrame struct {
	Type    string       `json:"type"`
	At      time.Time    `json:"at"`
	Markets []priceEntry `json:"markets"`
}

type priceEntry struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	YesPrice  float64 `json:"yes_price"`
	NoPrice   float64 `json:"no_price"`
	Volume24h float64 `json:"volume_24h"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub refreshes the top-volume markets on a fixed interval and fans the
// snapshot out to every connected client. A client too slow to drain its send
// buffer is dropped rather than allowed to stall the broadcast.
type Hub struct {
	provider   domsvc.MarketDataProvider
	log        *xlogger.Logger
	interval   time.Duration
	numMarkets int

	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	clients    map[*client]bool
	done       chan struct{}

	upgrader websocket.Upgrader
}

func NewHub(provider domsvc.MarketDataProvider, log *xlogger.Logger, interval time.Duration, numMarkets int) *Hub {
	if log == nil {
		log = xlogger.Nop()
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if numMarkets <= 0 {
		numMarkets = 20
	}
	return &Hub{
		provider:   provider,
		log:        log,
		interval:   interval,
		numMarkets: numMarkets,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 1),
		clients:    make(map[*client]bool),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Run owns the client set and the refresh loop. It returns when ctx is done,
// closing every client connection.
func (h *Hub) Run(ctx context.Context) {
	refresh := time.NewTicker(h.interval)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			// Unblock pumps and late registrations before dropping clients.
			close(h.done)
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug("ticker client connected", xlogger.Int("clients", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.log.Debug("ticker client disconnected", xlogger.Int("clients", len(h.clients)))

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}

		case <-refresh.C:
			if len(h.clients) == 0 {
				continue
			}
			h.refresh(ctx)
		}
	}
}

func (h *Hub) refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	markets, err := h.provider.ListMarkets(fetchCtx, models.ListFilters{
		ActiveOnly:    true,
		ExcludeClosed: true,
		Limit:         h.numMarkets,
	})
	if err != nil {
		h.log.Warn("ticker refresh failed", xlogger.Error(err))
		return
	}

	frame := priceFrame{Type: "prices", At: time.Now().UTC(), Markets: make([]priceEntry, 0, len(markets))}
	for _, m := range markets {
		frame.Markets = append(frame.Markets, priceEntry{
			ID:        m.ID,
			Title:     m.Title,
			YesPrice:  m.YesPrice,
			NoPrice:   m.NoPrice,
			Volume24h: m.Volume24h,
		})
	}

	msg, err := json.Marshal(frame)
	if err != nil {
		h.log.Error("ticker frame marshal", xlogger.Error(err))
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		// Previous frame still queued; the next tick supersedes it anyway.
	}
}

// HandleWS upgrades the request and attaches the client to the hub.
func (h *Hub) HandleWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- cl:
	case <-h.done:
		_ = conn.Close()
		return nil
	}

	go h.writePump(cl)
	go h.readPump(cl)
	return nil
}

// writePump drains the client's send buffer and keeps the connection alive
// with pings. It closes the connection when the hub closes the send channel.
func (h *Hub) writePump(cl *client) {
	ping := time.NewTicker(pingInterval)
	defer func() {
		ping.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ping.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; its job is detecting closes and pongs.
func (h *Hub) readPump(cl *client) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}
