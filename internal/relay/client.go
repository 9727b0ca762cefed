package relay

import (
	"github.com/gofiber/websocket/v2"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// set by the join-room handshake
	roomID string
	name   string
	role   domain.Role

	// topics the client is subscribed to, owned by the hub mutex
	topics map[string]bool
}

func (c *Client) ReadPump(handle func(raw []byte)) {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		handle(raw)
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
