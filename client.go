package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Inbound events per second allowed on one connection, with a small burst
// for pointer drags. Excess events are dropped, never errored.
const (
	clientEventRate  = 8
	clientEventBurst = 5
)

// Client is one websocket connection. The id doubles as the player ID for
// the lifetime of the connection; reconnection is not supported.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan any
	limiter *rate.Limiter
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWS upgrades the connection and hands it to the hub.
func serveWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Str("ip", realIP(r)).Msg("Websocket upgrade failed")
			return
		}

		client := &Client{
			id:      uuid.NewString(),
			conn:    conn,
			send:    make(chan any, 16),
			limiter: rate.NewLimiter(clientEventRate, clientEventBurst),
		}

		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		if !c.limiter.Allow() {
			continue
		}

		h.inbox <- inboundEvent{client: c, msg: msg}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
